package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/storage"
)

func newTestWishlist(t *testing.T) *WishlistStore {
	t.Helper()
	return NewWishlistStore(context.Background(), storage.NewMemoryStore(), "user-test", testLogger())
}

func TestWishlistStore_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	wl := newTestWishlist(t)

	assert.True(t, wl.Add(ctx, dress()))
	assert.False(t, wl.Add(ctx, dress()), "second add of same product is a no-op")

	assert.Equal(t, 1, wl.Count())
	assert.True(t, wl.Contains(1))
}

func TestWishlistStore_RecordsAddedAt(t *testing.T) {
	ctx := context.Background()
	wl := newTestWishlist(t)

	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	wl.now = func() time.Time { return fixed }

	wl.Add(ctx, dress())

	items := wl.Items()
	require.Len(t, items, 1)
	assert.Equal(t, fixed, items[0].AddedAt)
}

func TestWishlistStore_Remove(t *testing.T) {
	ctx := context.Background()
	wl := newTestWishlist(t)

	wl.Add(ctx, dress())
	assert.True(t, wl.Remove(ctx, 1))
	assert.False(t, wl.Contains(1))

	// Removing an absent product is a no-op
	assert.False(t, wl.Remove(ctx, 1))
	assert.False(t, wl.Remove(ctx, 42))
}

func TestWishlistStore_Toggle(t *testing.T) {
	ctx := context.Background()
	wl := newTestWishlist(t)

	assert.True(t, wl.Toggle(ctx, dress()), "first toggle adds")
	assert.True(t, wl.Contains(1))

	assert.False(t, wl.Toggle(ctx, dress()), "second toggle removes")
	assert.False(t, wl.Contains(1))
}

func TestWishlistStore_Clear(t *testing.T) {
	ctx := context.Background()
	wl := newTestWishlist(t)

	wl.Add(ctx, dress())
	wl.Add(ctx, scarf())
	wl.Clear(ctx)

	assert.Equal(t, 0, wl.Count())
	assert.Empty(t, wl.Items())
}

func TestWishlistStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()

	first := NewWishlistStore(ctx, st, "user-7", testLogger())
	first.Add(ctx, dress())

	second := NewWishlistStore(ctx, st, "user-7", testLogger())
	assert.True(t, second.Contains(1))
	assert.Equal(t, 1, second.Count())
}

func TestWishlistStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	wl := newTestWishlist(t)

	var notifications int
	unsub := wl.Subscribe(func([]domain.WishlistItem) { notifications++ })
	assert.Equal(t, 1, notifications)

	wl.Add(ctx, dress())
	assert.Equal(t, 2, notifications)

	unsub()
	wl.Add(ctx, scarf())
	assert.Equal(t, 2, notifications)
}

// --- Sync ---

type mockWishlistAPI struct {
	mock.Mock
}

func (m *mockWishlistAPI) ListWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WishlistItem), args.Error(1)
}

func (m *mockWishlistAPI) WishlistProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockWishlistAPI) AddToWishlist(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *mockWishlistAPI) RemoveFromWishlist(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func TestWishlistStore_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes local-only items then adopts server list", func(t *testing.T) {
		wl := newTestWishlist(t)
		wl.Add(ctx, dress()) // local only
		wl.Add(ctx, scarf()) // also on server

		remote := []domain.WishlistItem{
			{Product: scarf()},
			{Product: domain.Product{ID: 3, Name: "Wool Coat", PriceCents: 12900}},
		}

		api := new(mockWishlistAPI)
		api.On("ListWishlist", ctx).Return(remote, nil)
		api.On("AddToWishlist", ctx, int64(1)).Return(nil)

		require.NoError(t, wl.Sync(ctx, api))

		assert.Equal(t, 3, wl.Count())
		assert.True(t, wl.Contains(1))
		assert.True(t, wl.Contains(2))
		assert.True(t, wl.Contains(3))
		api.AssertExpectations(t)
	})

	t.Run("drops items the server rejects", func(t *testing.T) {
		wl := newTestWishlist(t)
		wl.Add(ctx, dress())

		api := new(mockWishlistAPI)
		api.On("ListWishlist", ctx).Return([]domain.WishlistItem{}, nil)
		api.On("AddToWishlist", ctx, int64(1)).Return(domain.ErrProductNotFound)

		require.NoError(t, wl.Sync(ctx, api))

		assert.Equal(t, 0, wl.Count(), "rejected item is dropped in favor of server state")
	})

	t.Run("fetch failure leaves local state untouched", func(t *testing.T) {
		wl := newTestWishlist(t)
		wl.Add(ctx, dress())

		api := new(mockWishlistAPI)
		api.On("ListWishlist", ctx).Return(nil, domain.Internal(assert.AnError, "api.wishlist", "server down"))

		err := wl.Sync(ctx, api)
		require.Error(t, err)
		assert.True(t, wl.Contains(1))
	})
}

func TestWishlistStore_Products(t *testing.T) {
	ctx := context.Background()
	wl := newTestWishlist(t)

	api := new(mockWishlistAPI)
	api.On("WishlistProducts", ctx).Return([]domain.Product{dress(), scarf()}, nil)

	products, err := wl.Products(ctx, api)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Silk Scarf", products[1].Name)
	api.AssertExpectations(t)
}
