package api

import (
	"context"
	"net/http"

	"github.com/dukerupert/sif/internal/domain"
)

// LoginParams are the credentials for signing in.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterParams are the fields for creating an account.
type RegisterParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. Bad credentials are
// reported as ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, params LoginParams) (*domain.Session, error) {
	var session domain.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", params, &session); err != nil {
		if domain.IsCode(err, domain.EUNAUTHORIZED) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return &session, nil
}

// Register creates an account and returns the initial session.
func (c *Client) Register(ctx context.Context, params RegisterParams) (*domain.Session, error) {
	var session domain.Session
	if err := c.do(ctx, http.MethodPost, "/auth/register", params, &session); err != nil {
		if domain.IsCode(err, domain.ECONFLICT) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return &session, nil
}

// VerifyToken asks the backend whether a stored token is still good and
// returns the user it belongs to. The token under test rides the
// Authorization header, so this works before the session is adopted.
func (c *Client) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := c.doWithToken(ctx, http.MethodGet, "/auth/verify", token, nil, &user); err != nil {
		if domain.IsCode(err, domain.EUNAUTHORIZED) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}
	return &user, nil
}

// ForgotPassword asks the backend to start a password reset for the
// given address. The backend replies identically whether or not the
// address has an account.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email"`
	}{Email: email}

	return c.do(ctx, http.MethodPost, "/auth/forgot-password", payload, nil)
}

// ResetPassword completes a password reset using the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	payload := struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}{Token: token, Password: newPassword}

	err := c.do(ctx, http.MethodPost, "/auth/reset-password", payload, nil)
	if err != nil && domain.IsCode(err, domain.EUNAUTHORIZED) {
		return domain.ErrResetTokenInvalid
	}
	return err
}

// Logout invalidates the current session on the backend. An already
// invalid session is treated as success.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil && domain.IsCode(err, domain.EUNAUTHORIZED) {
		return nil
	}
	return err
}
