/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/dictstore/datastore/aztable"
	"github.com/suparena/dictstore/datastore/ddb"
	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/region"
	"github.com/suparena/dictstore/retry"
)

const (
	BackendDynamoDB   = "dynamodb"
	BackendAzureTable = "azuretable"
)

// DefaultEnvFile is loaded before the settings file when it exists.
const DefaultEnvFile = ".env"

// Environment variables overriding file settings
const (
	EnvBackend         = "DICTSTORE_BACKEND"
	EnvTable           = "DICTSTORE_TABLE"
	EnvRegion          = "DICTSTORE_REGION"
	EnvEndpoint        = "DICTSTORE_ENDPOINT"
	EnvAutoSetup       = "DICTSTORE_AUTO_SETUP"
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "AWS_SESSION_TOKEN"
	EnvStorageAccount  = "AZURE_STORAGE_ACCOUNT"
	EnvStorageKey      = "AZURE_STORAGE_KEY"
)

// Settings selects a backend and carries the settings of every component.
// Only the selected backend's section is validated.
type Settings struct {
	Backend string `yaml:"backend" validate:"required,oneof=dynamodb azuretable"`
	// Endpoint overrides the service endpoint, such as a local emulator
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`

	DynamoDB   ddb.Config     `yaml:"dynamodb" validate:"-"`
	AzureTable aztable.Config `yaml:"azure_table" validate:"-"`
	Retry      retry.Config   `yaml:"retry"`
	Metrics    Metrics        `yaml:"metrics"`
}

// Metrics configures the Prometheus collector
type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"required_if=Enabled true"`
}

// Default returns settings for the DynamoDB backend with every optional
// value at its default
func Default() *Settings {
	return &Settings{
		Backend:    BackendDynamoDB,
		DynamoDB:   ddb.DefaultConfig(),
		AzureTable: aztable.DefaultConfig(),
		Retry:      retry.DefaultConfig(),
		Metrics:    Metrics{Namespace: "dictstore"},
	}
}

// Load reads settings in order: the .env file when present, the YAML file
// at path when path is non-empty, then environment overrides. The result is
// validated; failures are ConfigurationError.
func Load(path string) (*Settings, error) {
	if err := loadEnvFile(DefaultEnvFile); err != nil {
		return nil, err
	}

	s := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.NewConfigurationError(path, "cannot open settings file", err)
		}
		defer f.Close()
		if err := s.decode(f); err != nil {
			return nil, errors.NewConfigurationError(path, "cannot parse settings file", err)
		}
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	s.applyEndpoint()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse decodes YAML settings over the defaults without consulting the
// environment.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := s.decode(bytes.NewReader(data)); err != nil {
		return nil, errors.NewConfigurationError("", "cannot parse settings", err)
	}
	s.applyEndpoint()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func loadEnvFile(name string) error {
	if _, err := os.Stat(name); err != nil {
		return nil
	}
	if err := godotenv.Load(name); err != nil {
		return errors.NewConfigurationError(name, "cannot load env file", err)
	}
	return nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv(EnvBackend); v != "" {
		s.Backend = v
	}
	if v := os.Getenv(EnvTable); v != "" {
		s.DynamoDB.TableName = v
		s.AzureTable.TableName = v
	}
	if v := os.Getenv(EnvRegion); v != "" {
		s.DynamoDB.Region = v
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		s.Endpoint = v
	}
	if v := os.Getenv(EnvAccessKeyID); v != "" {
		s.DynamoDB.AccessKeyID = v
	}
	if v := os.Getenv(EnvSecretAccessKey); v != "" {
		s.DynamoDB.SecretAccessKey = v
	}
	if v := os.Getenv(EnvSessionToken); v != "" {
		s.DynamoDB.SessionToken = v
	}
	if v := os.Getenv(EnvStorageAccount); v != "" {
		s.AzureTable.AccountName = v
	}
	if v := os.Getenv(EnvStorageKey); v != "" {
		s.AzureTable.AccountKey = v
	}
	if v := os.Getenv(EnvAutoSetup); v != "" {
		autoSetup, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewConfigurationError(EnvAutoSetup, fmt.Sprintf("%q is not a boolean", v), err)
		}
		s.DynamoDB.AutoSetup = autoSetup
		s.AzureTable.AutoSetup = autoSetup
	}
	return nil
}

func (s *Settings) applyEndpoint() {
	if s.Endpoint != "" && s.Backend == BackendAzureTable {
		s.AzureTable.ServiceURL = s.Endpoint
	}
}

// Validate checks the common settings and the selected backend's section
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	switch s.Backend {
	case BackendAzureTable:
		return validate.Struct(s.AzureTable)
	default:
		return validate.Struct(s.DynamoDB)
	}
}

// Resolver returns the region resolver for the DynamoDB backend. A custom
// Endpoint is registered under the configured region name.
func (s *Settings) Resolver() region.Resolver {
	if s.Endpoint == "" {
		return region.NewStaticResolver()
	}
	return region.NewStaticResolver(region.WithEndpoint(s.DynamoDB.Region, s.Endpoint, s.DynamoDB.Region))
}
