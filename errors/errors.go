/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrInvalidArgument is returned when a required identifier or input is missing or empty
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOperationInvalid is returned when the remote table, container or entity an operation needs does not exist
	ErrOperationInvalid = errors.New("operation invalid")

	// ErrConfiguration is returned when a client cannot be configured (unknown region, empty schema, bad settings)
	ErrConfiguration = errors.New("configuration error")

	// ErrTransientRemoteFailure is returned when a remote call keeps failing after the retry policy gave up
	ErrTransientRemoteFailure = errors.New("transient remote failure")

	// ErrDecodeInconsistency is returned when a stored record cannot be mapped back to an entity
	ErrDecodeInconsistency = errors.New("decode inconsistency")

	// ErrNotFound is returned when a named resource is not known
	ErrNotFound = errors.New("not found")
)

// InvalidArgumentError represents a missing or malformed argument
type InvalidArgumentError struct {
	Param   string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// OperationInvalidError represents an operation against a resource that does not exist
type OperationInvalidError struct {
	Operation string
	Resource  string
	Message   string
	Err       error
}

func (e *OperationInvalidError) Error() string {
	msg := fmt.Sprintf("%s on %s: %s", e.Operation, e.Resource, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OperationInvalidError) Is(target error) bool {
	return target == ErrOperationInvalid
}

func (e *OperationInvalidError) Unwrap() error {
	return e.Err
}

// ConfigurationError represents a setting that makes a client unusable
type ConfigurationError struct {
	Setting string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Setting != "" {
		msg += fmt.Sprintf(" for %q", e.Setting)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// TransientError represents a remote call that failed after all retry attempts
type TransientError struct {
	Operation string
	Attempts  int
	Err       error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s failed after %d attempt(s): %v", e.Operation, e.Attempts, e.Err)
}

func (e *TransientError) Is(target error) bool {
	return target == ErrTransientRemoteFailure
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// DecodeInconsistencyError represents a stored record that is missing a required attribute
// or carries an attribute of the wrong type
type DecodeInconsistencyError struct {
	Attribute string
	Message   string
}

func (e *DecodeInconsistencyError) Error() string {
	return fmt.Sprintf("stored record inconsistent at %q: %s", e.Attribute, e.Message)
}

func (e *DecodeInconsistencyError) Is(target error) bool {
	return target == ErrDecodeInconsistency
}

// NotFoundError represents a lookup of an unknown named resource
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Helper functions for creating errors

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(param, message string) error {
	return &InvalidArgumentError{Param: param, Message: message}
}

// NewOperationInvalidError creates a new OperationInvalidError
func NewOperationInvalidError(operation, resource, message string, cause error) error {
	return &OperationInvalidError{Operation: operation, Resource: resource, Message: message, Err: cause}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(setting, message string, cause error) error {
	return &ConfigurationError{Setting: setting, Message: message, Err: cause}
}

// NewTransientError creates a new TransientError
func NewTransientError(operation string, attempts int, cause error) error {
	return &TransientError{Operation: operation, Attempts: attempts, Err: cause}
}

// NewDecodeInconsistencyError creates a new DecodeInconsistencyError
func NewDecodeInconsistencyError(attribute, message string) error {
	return &DecodeInconsistencyError{Attribute: attribute, Message: message}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resourceType, key string) error {
	return &NotFoundError{Type: resourceType, Key: key}
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsOperationInvalid checks if an error is an operation invalid error
func IsOperationInvalid(err error) bool {
	return errors.Is(err, ErrOperationInvalid)
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsTransient checks if an error is a transient remote failure surfaced after retries
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientRemoteFailure)
}

// IsDecodeInconsistency checks if an error is a decode inconsistency error
func IsDecodeInconsistency(err error) bool {
	return errors.Is(err, ErrDecodeInconsistency)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
