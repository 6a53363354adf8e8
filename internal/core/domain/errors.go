package domain

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks across layers. The typed errors below match
// them so callers can switch on the category without caring about details.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrIntegrity  = errors.New("integrity violation")
)

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a missing entity. Field is set when the id came from a
// foreign key on the request (e.g. owner_id) rather than the path.
type NotFoundError struct {
	Entity EntityKind
	ID     string
	Field  string
}

func (e *NotFoundError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s not found (%s=%s)", e.Entity.Label(), e.Field, e.ID)
	}
	return fmt.Sprintf("%s not found: %s", e.Entity.Label(), e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IntegrityViolation reports an operation that would break a referential or
// uniqueness invariant.
type IntegrityViolation struct {
	Field  string
	Reason string
}

func (e *IntegrityViolation) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *IntegrityViolation) Is(target error) bool { return target == ErrIntegrity }

// Invalid is shorthand for a *ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFound is shorthand for a *NotFoundError on a path id.
func NotFound(kind EntityKind, id string) error {
	return &NotFoundError{Entity: kind, ID: id}
}

// ErrorField returns the offending field carried by a taxonomy error, if any.
func ErrorField(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Field
	}
	var iv *IntegrityViolation
	if errors.As(err, &iv) {
		return iv.Field
	}
	return ""
}
