package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldRules shares the request validator's email rule so an address
// accepted at the HTTP edge is never rejected here, and vice versa.
var fieldRules = validator.New()

// RequireText fails when value is empty after trimming whitespace.
func RequireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(field, "must not be empty")
	}
	return nil
}

// OptionalText validates a partial-update field: nil means "unchanged",
// a non-nil pointer must hold non-empty text.
func OptionalText(field string, value *string) error {
	if value == nil {
		return nil
	}
	return RequireText(field, *value)
}

// RequireEmail checks the address is present and well formed.
func RequireEmail(field, value string) error {
	if err := RequireText(field, value); err != nil {
		return err
	}
	if err := fieldRules.Var(value, "email"); err != nil {
		return Invalid(field, "must be a valid email address")
	}
	return nil
}

// FirstError returns the first non-nil error, preserving field order.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
