package domain

import (
	"time"
)

// =============================================================================
// USER DOMAIN TYPES
// =============================================================================

// User is the authenticated customer profile returned by the backend.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session pairs a bearer token with the user it authenticates.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session token is past its expiry.
// A zero ExpiresAt means the backend did not report one; treat as live.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
	ErrSessionExpired     = &Error{Code: EUNAUTHORIZED, Message: "Session has expired"}
	ErrNotAuthenticated   = &Error{Code: EUNAUTHORIZED, Message: "Authentication required"}
	ErrEmailTaken         = &Error{Code: ECONFLICT, Message: "An account with this email already exists"}
	ErrResetTokenInvalid  = &Error{Code: EUNAUTHORIZED, Message: "Password reset link is invalid or has expired"}
)
