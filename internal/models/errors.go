package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for post operations
var (
	// ErrNotFound is returned when a record doesn't exist or was deleted
	ErrNotFound = errors.New("post not found")

	// ErrConfirmationRequired is returned when archive/delete is attempted
	// without the explicit confirmation flag
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrInvalidState is returned when an operation is illegal for the post's
	// current status (e.g. delete on a non-archived post)
	ErrInvalidState = errors.New("invalid post state for this operation")

	// ErrInvalidSchedule is returned when scheduling is attempted without a date
	ErrInvalidSchedule = errors.New("a schedule date is required")
)

// ValidationError represents a bad-input error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// StorageError wraps a transient repository I/O failure. Auto-save swallows
// these and retries; explicit user actions surface them.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError checks if error is a transient storage failure
func IsStorageError(err error) bool {
	var storErr *StorageError
	return errors.As(err, &storErr)
}

// IsNotFound checks if error means the record doesn't exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
