package shipping

// ============================================================================
// SHIPPING ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.
// The handler layer maps these to HTTP status codes.

const (
	codeInvalid = "invalid"
)

// ============================================================================
// SHIPPING ERROR TYPE
// ============================================================================

// ShippingError represents a shipping-specific error with a code and message.
// It follows the domain.Error pattern for consistent HTTP status mapping.
type ShippingError struct {
	Code    string
	Message string
}

func (e *ShippingError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *ShippingError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *ShippingError) ErrorMessage() string {
	return e.Message
}

// newShippingError creates a new shipping error.
func newShippingError(code, message string) *ShippingError {
	return &ShippingError{Code: code, Message: message}
}

// ============================================================================
// SHIPPING DOMAIN ERRORS
// ============================================================================

var (
	// ErrNegativeCost is returned when a provider is configured with a
	// negative rate.
	ErrNegativeCost = newShippingError(codeInvalid, "Shipping cost must not be negative")

	// ErrNegativeSubtotal is returned when quoting against a negative subtotal.
	ErrNegativeSubtotal = newShippingError(codeInvalid, "Subtotal must not be negative")
)
