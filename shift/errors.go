/*
errors.go - Centralized error types for the shift calendar

PURPOSE:
  All error types in one place for consistency and discoverability.
  Stores, the accounting engine and the tracker return these so the
  transport layers (HTTP, CLI) can map them without string matching.

ERROR CATEGORIES:
  1. Validation errors - malformed year/month/date/type/payload (HTTP 400)
  2. Config errors     - an impossible shift-time table or target
  3. Storage errors    - unexpected persistence failures (HTTP 500)

NOT FOUND:
  A missing assignment or settings record is a valid read result (nil),
  never an error.

RETRIES:
  None. Every operation is a single attempt against a local store.

SEE ALSO:
  - store.go: Store contracts returning these errors
  - api/handlers.go: HTTP status mapping
*/
package shift

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("invalid configuration")

	// ErrStorage is matched by every *StorageError.
	ErrStorage = errors.New("storage failure")

	// ErrUnknownType is returned when a shift type label is not one of the four.
	ErrUnknownType = errors.New("unknown shift type")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError describes malformed input.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ValidationError) Unwrap() error        { return e.Err }

// ConfigError describes an inconsistent shift-time table or target.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// StorageError wraps a failure of the backing store.
type StorageError struct {
	Op  string // e.g. "upsert", "list"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
func (e *StorageError) Unwrap() error        { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps err as a StorageError, or returns nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrUnknownType)
}

// IsStorageError returns true for failures of the backing store.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}
