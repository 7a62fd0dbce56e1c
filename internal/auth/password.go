package auth

import (
	"net/mail"
	"strings"

	"github.com/dukerupert/sif/internal/domain"
)

const (
	// MinPasswordLength is the minimum acceptable password length
	MinPasswordLength = 8
)

// ValidateCredentials checks login input before it ever leaves the
// process. Hashing and the real credential check happen on the backend.
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return domain.NewValidationError("auth.validate", "password", "password is required")
	}
	return nil
}

// ValidateRegistration checks sign-up input, including the minimum
// password length the backend enforces.
func ValidateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("auth.validate", "name", "name is required")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) < MinPasswordLength {
		return domain.NewValidationError("auth.validate", "password", "password must be at least 8 characters")
	}
	return nil
}

// ValidateEmail checks that email parses as an address.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.NewValidationError("auth.validate", "email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.NewValidationError("auth.validate", "email", "email is not valid")
	}
	return nil
}
