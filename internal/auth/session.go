// Package auth manages the customer session: exchanging credentials for
// a token through the backend, persisting the session, and restoring and
// re-verifying it at startup.
package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/sif/internal/api"
	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/signal"
	"github.com/dukerupert/sif/internal/storage"
)

// sessionKey is where the serialized session lives in the backing store.
const sessionKey = "auth:session"

// API is the slice of the backend client the session manager needs.
type API interface {
	Login(ctx context.Context, params api.LoginParams) (*domain.Session, error)
	Register(ctx context.Context, params api.RegisterParams) (*domain.Session, error)
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// Manager holds the current session and keeps it in sync with the
// backing store. A nil session means signed out.
type Manager struct {
	mu      sync.Mutex
	session *signal.Value[*domain.Session]
	api     API
	store   storage.Store
	logger  *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewManager creates a signed-out session manager. Call Restore to pick
// up a persisted session.
func NewManager(apiClient API, st storage.Store, logger *slog.Logger) *Manager {
	return &Manager{
		session: signal.New[*domain.Session](nil),
		api:     apiClient,
		store:   st,
		logger:  logger.With("component", "session_manager"),
		now:     time.Now,
	}
}

// Restore loads a persisted session and re-verifies its token with the
// backend. An expired, rejected, or corrupt session is discarded; only
// infrastructure failures are returned as errors.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.store.Get(ctx, sessionKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil
		}
		return domain.Internal(err, "auth.restore", "failed to load session")
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		m.logger.Warn("discarding corrupt persisted session", "error", err)
		m.clearLocked(ctx)
		return nil
	}

	if session.Expired(m.now()) {
		m.logger.Info("persisted session expired", "user_id", session.User.ID)
		m.clearLocked(ctx)
		return nil
	}

	user, err := m.api.VerifyToken(ctx, session.Token)
	if err != nil {
		if domain.IsCode(err, domain.EUNAUTHORIZED) {
			m.logger.Info("persisted session rejected by backend", "user_id", session.User.ID)
			m.clearLocked(ctx)
			return nil
		}
		return domain.WrapError(err, domain.ErrorCode(err), "auth.restore", "failed to verify session")
	}

	session.User = *user
	m.session.Set(&session)
	m.persist(ctx, &session)
	return nil
}

// Login signs the user in and persists the new session.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	session, err := m.api.Login(ctx, api.LoginParams{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	m.adopt(ctx, session)
	m.logger.Info("user signed in", "user_id", session.User.ID)
	return &session.User, nil
}

// Register creates an account and signs the user in.
func (m *Manager) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if err := ValidateRegistration(name, email, password); err != nil {
		return nil, err
	}

	session, err := m.api.Register(ctx, api.RegisterParams{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	m.adopt(ctx, session)
	m.logger.Info("user registered", "user_id", session.User.ID)
	return &session.User, nil
}

// Logout invalidates the session on the backend and clears local state.
// Local state is cleared even when the backend call fails, so the user
// is never stuck signed in.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.api.Logout(ctx)
	if err != nil {
		m.logger.Warn("backend logout failed, clearing local session anyway", "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked(ctx)
	return err
}

// ForgotPassword starts a password reset for the given address.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := m.api.ForgotPassword(ctx, email); err != nil {
		return err
	}
	m.logger.Info("password reset requested")
	return nil
}

// ResetPassword completes a reset with the emailed token. Any session is
// cleared afterwards so the user signs in with the new password.
func (m *Manager) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.NewValidationError("auth.reset", "token", "reset token is required")
	}
	if len(newPassword) < MinPasswordLength {
		return domain.NewValidationError("auth.reset", "password", "password must be at least 8 characters")
	}

	if err := m.api.ResetPassword(ctx, token, newPassword); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked(ctx)
	m.logger.Info("password reset completed")
	return nil
}

// CurrentUser returns the signed-in user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	if s := m.session.Get(); s != nil {
		user := s.User
		return &user
	}
	return nil
}

// Token returns the current bearer token, or "" when signed out.
// Matches api.TokenSource so it can be handed to the API client.
func (m *Manager) Token() string {
	if s := m.session.Get(); s != nil {
		return s.Token
	}
	return ""
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.session.Get() != nil
}

// Subscribe registers fn to be called whenever the session changes
// (sign-in, sign-out, restore). fn is invoked immediately with the
// current session.
func (m *Manager) Subscribe(fn func(*domain.Session)) signal.Unsubscribe {
	return m.session.Subscribe(fn)
}

func (m *Manager) adopt(ctx context.Context, session *domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session.Set(session)
	m.persist(ctx, session)
}

func (m *Manager) persist(ctx context.Context, session *domain.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		m.logger.Error("failed to encode session", "error", err)
		return
	}
	if err := m.store.Put(ctx, sessionKey, data); err != nil {
		m.logger.Warn("failed to persist session", "error", err)
	}
}

// clearLocked drops the session. Caller holds m.mu.
func (m *Manager) clearLocked(ctx context.Context) {
	m.session.Set(nil)
	if err := m.store.Delete(ctx, sessionKey); err != nil {
		m.logger.Warn("failed to clear persisted session", "error", err)
	}
}
