package domain

import (
	"fmt"
	"strings"
)

// Common error types
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ErrFormNotFound aborts a submission before any writes occur.
type ErrFormNotFound struct {
	FormID string
}

func (e *ErrFormNotFound) Error() string {
	return fmt.Sprintf("form not found: %s", e.FormID)
}

// ErrNoIdentifierField reports a form schema with no field flagged as the
// contact identifier; the submission pipeline cannot dedup without one.
type ErrNoIdentifierField struct {
	FormID string
}

func (e *ErrNoIdentifierField) Error() string {
	return fmt.Sprintf("form %s has no identifier field", e.FormID)
}

// ErrAmbiguousIdentifier reports a form schema with more than one field
// flagged as the contact identifier.
type ErrAmbiguousIdentifier struct {
	FormID string
	Fields []string
}

func (e *ErrAmbiguousIdentifier) Error() string {
	return fmt.Sprintf("form %s has multiple identifier fields: %s", e.FormID, strings.Join(e.Fields, ", "))
}

// ErrMissingIdentifierValue reports a submission that left the identifier
// field empty.
type ErrMissingIdentifierValue struct {
	Field string
}

func (e *ErrMissingIdentifierValue) Error() string {
	return fmt.Sprintf("submission has no value for identifier field %q", e.Field)
}

// ErrDuplicateContacts is a data-integrity error: an identifier lookup that
// should resolve to at most one contact matched several.
type ErrDuplicateContacts struct {
	Attribute string
	Value     string
}

func (e *ErrDuplicateContacts) Error() string {
	return fmt.Sprintf("multiple contacts match %s=%q", e.Attribute, e.Value)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}
