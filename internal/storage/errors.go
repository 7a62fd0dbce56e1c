package storage

import "fmt"

// ============================================================================
// STORAGE ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.
// The handler layer maps these to HTTP status codes.

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// ============================================================================
// STORAGE ERROR TYPE
// ============================================================================

// StoreError represents a storage-specific error with a code and message.
// It follows the domain.Error pattern for consistent HTTP status mapping.
type StoreError struct {
	Code    string
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *StoreError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *StoreError) ErrorMessage() string {
	return e.Message
}

// newStoreError creates a new storage error.
func newStoreError(code, message string) *StoreError {
	return &StoreError{Code: code, Message: message}
}

// ============================================================================
// STORAGE DOMAIN ERRORS
// ============================================================================

var (
	// ErrPoolRequired is returned when the postgres provider is selected
	// without a connection pool; use NewPostgresStore directly.
	ErrPoolRequired = newStoreError(codeInvalid, "postgres state store requires a connection pool")
)

// ErrKeyNotFound creates an error for when a key has no stored value.
func ErrKeyNotFound(key string) error {
	return &StoreError{
		Code:    codeNotFound,
		Message: fmt.Sprintf("key not found: %s", key),
	}
}

// ErrUnknownProvider creates an error for unknown storage providers.
func ErrUnknownProvider(provider string) error {
	return &StoreError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("unknown state store provider: %s", provider),
	}
}

// IsNotFound reports whether err is a missing-key storage error.
func IsNotFound(err error) bool {
	se, ok := err.(*StoreError)
	return ok && se.Code == codeNotFound
}
