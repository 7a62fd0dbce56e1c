// Package domain provides core business types and context helpers for Sif.
//
// Context helpers centralize request-scoped data access so handlers and
// services share one way of reading the authenticated user and request ID.
package domain

import (
	"context"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	// userContextKey stores user information in context.
	userContextKey contextKey = iota

	// requestIDContextKey stores the request ID for tracing.
	requestIDContextKey
)

// --- User Context Helpers ---

// NewContextWithUser returns a new context with the user attached.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the user from context.
// Returns nil if no user is present.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}

// UserIDFromContext retrieves the user ID from context.
// Returns 0 if no user is present.
func UserIDFromContext(ctx context.Context) int64 {
	if user := UserFromContext(ctx); user != nil {
		return user.ID
	}
	return 0
}

// RequireUserID retrieves the user ID from context, panicking if not present.
// Use this in service layers where an authenticated user is required.
// The panic will be caught by error recovery middleware in HTTP handlers.
func RequireUserID(ctx context.Context) int64 {
	id := UserIDFromContext(ctx)
	if id == 0 {
		panic("user_id required in context but not found")
	}
	return id
}

// MustUser retrieves the user from context, panicking if not present.
func MustUser(ctx context.Context) *User {
	user := UserFromContext(ctx)
	if user == nil {
		panic("user required in context but not found")
	}
	return user
}

// --- Request ID Context Helpers ---

// NewContextWithRequestID returns a new context with the request ID attached.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}

// --- Convenience Helpers ---

// IsAuthenticated returns true if there is a user in context.
func IsAuthenticated(ctx context.Context) bool {
	return UserFromContext(ctx) != nil
}
