// Package repository provides the persistence layer of the storefront:
// one repository per collection, each doing full-collection
// read-modify-write against an injected key-value store.
package repository

import "errors"

// ErrNotFound is returned when an update or delete target does not exist.
var ErrNotFound = errors.New("record not found")

// ErrCorruptData is returned by the collection loader when the stored
// blob is not valid JSON. Repositories log it and fall back to an empty
// collection; an absent key is not corrupt.
var ErrCorruptData = errors.New("stored collection is not valid JSON")

// ValidationError describes a rejected field on create or update.
type ValidationError struct {
	// Field names the offending input field.
	Field string
	// Message is the human-readable reason.
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
