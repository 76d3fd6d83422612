package service

import (
	"errors"
	"fmt"

	"salescoach-ai/internal/blobstore"
	"salescoach-ai/internal/storage"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrConflict is returned when the request clashes with work in progress.
	ErrConflict = errors.New("conflict")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// notFound translates a store miss into ErrNotFound for resource and wraps
// any other error with msg.
func notFound(err error, resource, msg string) error {
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%s %w", resource, ErrNotFound)
	}
	return WrapError(err, msg)
}

// external marks err as a failure of an external collaborator.
func external(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrExternalService, err)
}
