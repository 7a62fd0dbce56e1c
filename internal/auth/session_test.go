package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/sif/internal/api"
	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Login(ctx context.Context, params api.LoginParams) (*domain.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *mockAPI) Register(ctx context.Context, params api.RegisterParams) (*domain.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *mockAPI) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockAPI) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockAPI) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func session() *domain.Session {
	return &domain.Session{
		Token: "tok-123",
		User:  domain.User{ID: 7, Email: "maria@example.com", Name: "Maria Garcia"},
	}
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores session", func(t *testing.T) {
		apiMock := new(mockAPI)
		apiMock.On("Login", ctx, api.LoginParams{Email: "maria@example.com", Password: "hunter22"}).
			Return(session(), nil)

		st := storage.NewMemoryStore()
		m := NewManager(apiMock, st, testLogger())

		user, err := m.Login(ctx, "maria@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, "tok-123", m.Token())

		// Session was persisted
		exists, err := st.Exists(ctx, sessionKey)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("rejects malformed email locally", func(t *testing.T) {
		apiMock := new(mockAPI)
		m := NewManager(apiMock, storage.NewMemoryStore(), testLogger())

		_, err := m.Login(ctx, "not-an-email", "password")
		assert.True(t, domain.IsValidationError(err))
		apiMock.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("bad credentials stay signed out", func(t *testing.T) {
		apiMock := new(mockAPI)
		apiMock.On("Login", ctx, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

		m := NewManager(apiMock, storage.NewMemoryStore(), testLogger())
		_, err := m.Login(ctx, "maria@example.com", "wrong")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.False(t, m.IsAuthenticated())
		assert.Empty(t, m.Token())
	})
}

func TestManager_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("short password rejected locally", func(t *testing.T) {
		apiMock := new(mockAPI)
		m := NewManager(apiMock, storage.NewMemoryStore(), testLogger())

		_, err := m.Register(ctx, "Maria", "maria@example.com", "short")
		assert.True(t, domain.IsValidationError(err))
		apiMock.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("success signs user in", func(t *testing.T) {
		apiMock := new(mockAPI)
		apiMock.On("Register", ctx, api.RegisterParams{
			Name: "Maria", Email: "maria@example.com", Password: "hunter22",
		}).Return(session(), nil)

		m := NewManager(apiMock, storage.NewMemoryStore(), testLogger())
		user, err := m.Register(ctx, "Maria", "maria@example.com", "hunter22")

		require.NoError(t, err)
		assert.Equal(t, "Maria Garcia", user.Name)
		assert.True(t, m.IsAuthenticated())
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears local state", func(t *testing.T) {
		apiMock := new(mockAPI)
		apiMock.On("Login", ctx, mock.Anything).Return(session(), nil)
		apiMock.On("Logout", ctx).Return(nil)

		st := storage.NewMemoryStore()
		m := NewManager(apiMock, st, testLogger())
		_, err := m.Login(ctx, "maria@example.com", "hunter22")
		require.NoError(t, err)

		require.NoError(t, m.Logout(ctx))
		assert.False(t, m.IsAuthenticated())
		assert.Nil(t, m.CurrentUser())

		exists, err := st.Exists(ctx, sessionKey)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("clears locally even when backend fails", func(t *testing.T) {
		apiMock := new(mockAPI)
		apiMock.On("Login", ctx, mock.Anything).Return(session(), nil)
		apiMock.On("Logout", ctx).Return(assert.AnError)

		m := NewManager(apiMock, storage.NewMemoryStore(), testLogger())
		_, err := m.Login(ctx, "maria@example.com", "hunter22")
		require.NoError(t, err)

		err = m.Logout(ctx)
		assert.Error(t, err)
		assert.False(t, m.IsAuthenticated(), "local session cleared regardless")
	})
}

func TestManager_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing persisted", func(t *testing.T) {
		m := NewManager(new(mockAPI), storage.NewMemoryStore(), testLogger())
		require.NoError(t, m.Restore(ctx))
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("valid session re-verified and adopted", func(t *testing.T) {
		st := storage.NewMemoryStore()
		persistSessionTo(t, ctx, st, session())

		apiMock := new(mockAPI)
		refreshed := &domain.User{ID: 7, Email: "maria@example.com", Name: "Maria G."}
		apiMock.On("VerifyToken", ctx, "tok-123").Return(refreshed, nil)

		m := NewManager(apiMock, st, testLogger())
		require.NoError(t, m.Restore(ctx))

		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, "Maria G.", m.CurrentUser().Name, "adopts the backend's fresh profile")
	})

	t.Run("rejected token discards session", func(t *testing.T) {
		st := storage.NewMemoryStore()
		persistSessionTo(t, ctx, st, session())

		apiMock := new(mockAPI)
		apiMock.On("VerifyToken", ctx, "tok-123").Return(nil, domain.ErrSessionExpired)

		m := NewManager(apiMock, st, testLogger())
		require.NoError(t, m.Restore(ctx))

		assert.False(t, m.IsAuthenticated())
		exists, err := st.Exists(ctx, sessionKey)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("expired session discarded without backend call", func(t *testing.T) {
		st := storage.NewMemoryStore()
		expired := session()
		expired.ExpiresAt = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		persistSessionTo(t, ctx, st, expired)

		apiMock := new(mockAPI)
		m := NewManager(apiMock, st, testLogger())
		require.NoError(t, m.Restore(ctx))

		assert.False(t, m.IsAuthenticated())
		apiMock.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
	})

	t.Run("corrupt session discarded", func(t *testing.T) {
		st := storage.NewMemoryStore()
		require.NoError(t, st.Put(ctx, sessionKey, []byte("{broken")))

		m := NewManager(new(mockAPI), st, testLogger())
		require.NoError(t, m.Restore(ctx))
		assert.False(t, m.IsAuthenticated())
	})
}

func TestManager_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed email rejected locally", func(t *testing.T) {
		apiMock := new(mockAPI)
		m := NewManager(apiMock, storage.NewMemoryStore(), testLogger())

		err := m.ForgotPassword(ctx, "not-an-email")
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		apiMock.AssertNotCalled(t, "ForgotPassword", mock.Anything, mock.Anything)
	})

	t.Run("valid email forwarded to backend", func(t *testing.T) {
		apiMock := new(mockAPI)
		apiMock.On("ForgotPassword", ctx, "maria@example.com").Return(nil)

		m := NewManager(apiMock, storage.NewMemoryStore(), testLogger())
		require.NoError(t, m.ForgotPassword(ctx, "maria@example.com"))
		apiMock.AssertExpectations(t)
	})
}

func TestManager_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("short password rejected locally", func(t *testing.T) {
		apiMock := new(mockAPI)
		m := NewManager(apiMock, storage.NewMemoryStore(), testLogger())

		err := m.ResetPassword(ctx, "reset-tok", "short")
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		apiMock.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success clears any active session", func(t *testing.T) {
		apiMock := new(mockAPI)
		apiMock.On("Login", ctx, mock.Anything).Return(session(), nil)
		apiMock.On("ResetPassword", ctx, "reset-tok", "n3w-password").Return(nil)

		st := storage.NewMemoryStore()
		m := NewManager(apiMock, st, testLogger())
		_, err := m.Login(ctx, "maria@example.com", "hunter22")
		require.NoError(t, err)

		require.NoError(t, m.ResetPassword(ctx, "reset-tok", "n3w-password"))
		assert.False(t, m.IsAuthenticated(), "old session dies with the old password")

		_, err = st.Get(ctx, sessionKey)
		assert.True(t, storage.IsNotFound(err))
	})
}

func TestManager_Subscribe(t *testing.T) {
	ctx := context.Background()
	apiMock := new(mockAPI)
	apiMock.On("Login", ctx, mock.Anything).Return(session(), nil)
	apiMock.On("Logout", ctx).Return(nil)

	m := NewManager(apiMock, storage.NewMemoryStore(), testLogger())

	var states []*domain.Session
	m.Subscribe(func(s *domain.Session) { states = append(states, s) })
	require.Len(t, states, 1)
	assert.Nil(t, states[0], "initial state is signed out")

	_, err := m.Login(ctx, "maria@example.com", "hunter22")
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.NotNil(t, states[1])

	require.NoError(t, m.Logout(ctx))
	require.Len(t, states, 3)
	assert.Nil(t, states[2])
}

func persistSessionTo(t *testing.T, ctx context.Context, st storage.Store, s *domain.Session) {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, sessionKey, data))
}
