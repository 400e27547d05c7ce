/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"fmt"
	"time"

	"github.com/suparena/dictstore/datastore"
)

// Config holds the settings of an Azure Table store client
type Config struct {
	AccountName string `yaml:"account_name" validate:"required"`
	AccountKey  string `yaml:"account_key" validate:"required"`
	// ServiceURL defaults to https://<account>.table.core.windows.net
	ServiceURL string `yaml:"service_url" validate:"omitempty,url"`
	TableName  string `yaml:"table" validate:"required,min=3,max=63,alphanum"`

	// AutoSetup creates the table on first use when it does not exist
	AutoSetup bool `yaml:"auto_setup"`

	BatchSize    int           `yaml:"batch_size" validate:"min=1,max=25"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DefaultConfig returns a config with every optional setting at its default
func DefaultConfig() Config {
	return Config{
		AutoSetup:    true,
		BatchSize:    datastore.MaxBatchSize,
		PollInterval: 5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ServiceURL == "" && c.AccountName != "" {
		c.ServiceURL = fmt.Sprintf("https://%s.table.core.windows.net", c.AccountName)
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	return c
}
