/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"time"

	"github.com/suparena/dictstore/datastore"
)

// Config holds the settings of a DynamoDB store client
type Config struct {
	AccessKeyID     string `yaml:"access_key_id" validate:"required"`
	SecretAccessKey string `yaml:"secret_access_key" validate:"required"`
	SessionToken    string `yaml:"session_token"`
	// Region is resolved through the client's region.Resolver
	Region    string `yaml:"region" validate:"required"`
	TableName string `yaml:"table" validate:"required,min=3,max=255"`

	// AutoSetup creates the table on first use when it does not exist
	AutoSetup          bool  `yaml:"auto_setup"`
	ReadCapacityUnits  int64 `yaml:"read_capacity_units" validate:"min=1"`
	WriteCapacityUnits int64 `yaml:"write_capacity_units" validate:"min=1"`

	BatchSize    int           `yaml:"batch_size" validate:"min=1,max=25"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DefaultConfig returns a config with every optional setting at its default
func DefaultConfig() Config {
	return Config{
		AutoSetup:          true,
		ReadCapacityUnits:  10,
		WriteCapacityUnits: 10,
		BatchSize:          datastore.MaxBatchSize,
		PollInterval:       5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ReadCapacityUnits <= 0 {
		c.ReadCapacityUnits = d.ReadCapacityUnits
	}
	if c.WriteCapacityUnits <= 0 {
		c.WriteCapacityUnits = d.WriteCapacityUnits
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	return c
}
