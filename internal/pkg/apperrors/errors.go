package apperrors

import (
	"errors"
	"fmt"
)

// Storage engine errors
var (
	// ErrValidation indicates an entity invariant was violated. It is never
	// corrected or retried internally; callers see it unchanged.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a lookup or delete target is absent.
	ErrNotFound = errors.New("resource not found")

	// ErrUnknownType indicates a decode met an unregistered discriminator.
	ErrUnknownType = errors.New("unknown entity type")

	// ErrInvalidQuery indicates a malformed filter expression.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrStorageBackend indicates an I/O, connection, or commit failure.
	ErrStorageBackend = errors.New("storage backend failure")

	// ErrConfiguration indicates missing or inconsistent backend parameters.
	// Fatal at startup.
	ErrConfiguration = errors.New("invalid configuration")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Resource errors
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrConflict           = errors.New("conflict")
)

// ValidationError reports which field broke which rule. It unwraps to
// ErrValidation so callers can match the whole class with errors.Is.
type ValidationError struct {
	Field string
	Rule  string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Rule)
}

// Unwrap implements errors.Unwrap
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for a field and rule
func NewValidationError(field, rule string) error {
	return &ValidationError{Field: field, Rule: rule}
}

// NewNotFoundError wraps ErrNotFound with the entity kind and id
func NewNotFoundError(kind, id string) error {
	return fmt.Errorf("%w: %s.%s", ErrNotFound, kind, id)
}

// NewUnknownTypeError wraps ErrUnknownType with the offending tag
func NewUnknownTypeError(tag string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, tag)
}

// NewInvalidQueryError wraps ErrInvalidQuery with a reason
func NewInvalidQueryError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, reason)
}

// NewStorageBackendError wraps a backend failure, keeping the cause in the chain
func NewStorageBackendError(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageBackend, op, cause)
}

// NewConfigurationError wraps ErrConfiguration with a reason
func NewConfigurationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, reason)
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
