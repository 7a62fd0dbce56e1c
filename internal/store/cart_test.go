package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dress() domain.Product {
	return domain.Product{
		ID:             1,
		Name:           "Floral Midi Dress",
		Brand:          "Luna",
		Category:       domain.CategoryDresses,
		PriceCents:     4999,
		Sizes:          []string{"S", "M", "L"},
		AvailableSizes: []string{"S", "M"},
		Colors:         []string{"red", "navy"},
	}
}

func scarf() domain.Product {
	return domain.Product{
		ID:         2,
		Name:       "Silk Scarf",
		Brand:      "Aria",
		Category:   domain.CategoryAccessories,
		PriceCents: 1500,
	}
}

func newTestCart(t *testing.T) *CartStore {
	t.Helper()
	return NewCartStore(context.Background(), storage.NewMemoryStore(), "session-test", testLogger())
}

func TestCartStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a new line", func(t *testing.T) {
		cart := newTestCart(t)

		require.NoError(t, cart.Add(ctx, dress(), "M", "red", 2))

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, "M", items[0].Size)
		assert.Equal(t, int64(9998), items[0].LineSubtotalCents())
	})

	t.Run("merges same variant into one line", func(t *testing.T) {
		cart := newTestCart(t)

		require.NoError(t, cart.Add(ctx, dress(), "M", "red", 1))
		require.NoError(t, cart.Add(ctx, dress(), "M", "red", 2))

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("different size is a separate line", func(t *testing.T) {
		cart := newTestCart(t)

		require.NoError(t, cart.Add(ctx, dress(), "M", "red", 1))
		require.NoError(t, cart.Add(ctx, dress(), "S", "red", 1))

		assert.Len(t, cart.Items(), 2)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart := newTestCart(t)

		err := cart.Add(ctx, dress(), "M", "red", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

		err = cart.Add(ctx, dress(), "M", "red", -1)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Empty(t, cart.Items())
	})

	t.Run("requires size when product has sizes", func(t *testing.T) {
		cart := newTestCart(t)

		err := cart.Add(ctx, dress(), "", "red", 1)
		assert.ErrorIs(t, err, domain.ErrSizeRequired)
	})

	t.Run("requires color when product has colors", func(t *testing.T) {
		cart := newTestCart(t)

		err := cart.Add(ctx, dress(), "M", "", 1)
		assert.ErrorIs(t, err, domain.ErrColorRequired)
	})

	t.Run("no variant selection needed without options", func(t *testing.T) {
		cart := newTestCart(t)

		require.NoError(t, cart.Add(ctx, scarf(), "", "", 1))
		assert.Len(t, cart.Items(), 1)
	})
}

func TestCartStore_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("sets new quantity", func(t *testing.T) {
		cart := newTestCart(t)
		require.NoError(t, cart.Add(ctx, dress(), "M", "red", 1))

		key := domain.CartItemKey{ProductID: 1, Size: "M", Color: "red"}
		require.NoError(t, cart.UpdateQuantity(ctx, key, 5))

		assert.Equal(t, 5, cart.Items()[0].Quantity)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		cart := newTestCart(t)
		require.NoError(t, cart.Add(ctx, dress(), "M", "red", 2))

		key := domain.CartItemKey{ProductID: 1, Size: "M", Color: "red"}
		require.NoError(t, cart.UpdateQuantity(ctx, key, 0))

		assert.Empty(t, cart.Items())
	})

	t.Run("unknown line returns not found", func(t *testing.T) {
		cart := newTestCart(t)

		key := domain.CartItemKey{ProductID: 99, Size: "M", Color: "red"}
		err := cart.UpdateQuantity(ctx, key, 3)
		assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
	})

	t.Run("zero quantity for an absent line is a no-op", func(t *testing.T) {
		cart := newTestCart(t)
		require.NoError(t, cart.Add(ctx, dress(), "M", "red", 2))

		key := domain.CartItemKey{ProductID: 99, Size: "M", Color: "red"}
		require.NoError(t, cart.UpdateQuantity(ctx, key, 0))
		assert.Len(t, cart.Items(), 1)
	})
}

func TestCartStore_Remove(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t)

	require.NoError(t, cart.Add(ctx, dress(), "M", "red", 1))
	require.NoError(t, cart.Add(ctx, scarf(), "", "", 1))

	key := domain.CartItemKey{ProductID: 1, Size: "M", Color: "red"}
	require.NoError(t, cart.Remove(ctx, key))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Product.ID)

	// Removing again is a no-op, not an error
	require.NoError(t, cart.Remove(ctx, key))
	assert.Len(t, cart.Items(), 1)
}

func TestCartStore_Totals(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t)

	require.NoError(t, cart.Add(ctx, dress(), "M", "red", 2)) // 2 x 4999
	require.NoError(t, cart.Add(ctx, scarf(), "", "", 3))     // 3 x 1500

	assert.Equal(t, 5, cart.ItemCount())
	assert.Equal(t, int64(2*4999+3*1500), cart.SubtotalCents())

	summary := cart.Summary()
	assert.Equal(t, 5, summary.ItemCount)
	assert.Equal(t, int64(14498), summary.SubtotalCents)
	assert.Len(t, summary.Items, 2)
}

func TestCartStore_Clear(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t)

	require.NoError(t, cart.Add(ctx, dress(), "M", "red", 1))
	cart.Clear(ctx)

	assert.Empty(t, cart.Items())
	assert.Equal(t, 0, cart.ItemCount())
}

func TestCartStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()

	first := NewCartStore(ctx, st, "session-1", testLogger())
	require.NoError(t, first.Add(ctx, dress(), "M", "red", 2))

	// A fresh store for the same session sees the persisted state
	second := NewCartStore(ctx, st, "session-1", testLogger())
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	// A different session starts empty
	other := NewCartStore(ctx, st, "session-2", testLogger())
	assert.Empty(t, other.Items())
}

func TestCartStore_CorruptStateDiscarded(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	require.NoError(t, st.Put(ctx, "cart:session-1", []byte("{not json")))

	cart := NewCartStore(ctx, st, "session-1", testLogger())
	assert.Empty(t, cart.Items())
}

func TestCartStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t)

	var notifications int
	var last []domain.CartItem
	unsub := cart.Subscribe(func(items []domain.CartItem) {
		notifications++
		last = items
	})
	assert.Equal(t, 1, notifications, "subscribe should replay current state")

	require.NoError(t, cart.Add(ctx, dress(), "M", "red", 1))
	assert.Equal(t, 2, notifications)
	require.Len(t, last, 1)

	unsub()
	require.NoError(t, cart.Add(ctx, scarf(), "", "", 1))
	assert.Equal(t, 2, notifications, "unsubscribed listener must not fire")
}
