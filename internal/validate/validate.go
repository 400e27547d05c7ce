// Package validate holds the argument and settings checks shared by the adapters.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/suparena/dictstore/errors"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// RequireNonEmpty fails with an InvalidArgumentError when value is empty.
func RequireNonEmpty(value, param string) error {
	if value == "" {
		return errors.NewInvalidArgumentError(param, "must not be empty")
	}
	return nil
}

// RequireKeys checks an (entity, partition) key pair.
func RequireKeys(entityID, partitionID string) error {
	if err := RequireNonEmpty(entityID, "entityID"); err != nil {
		return err
	}
	return RequireNonEmpty(partitionID, "partitionID")
}

// Struct validates s against its `validate` tags and reports every failing
// field in a single ConfigurationError.
func Struct(s any) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewConfigurationError("", "invalid settings", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.NewConfigurationError(validationErrors[0].Namespace(), strings.Join(msgs, "; "), nil)
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Namespace())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Namespace(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Namespace(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Namespace(), e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", e.Namespace())
	default:
		return fmt.Sprintf("%s is invalid", e.Namespace())
	}
}
