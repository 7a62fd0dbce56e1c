// Package store implements the client-side state holders for the
// storefront: the shopping cart and the wishlist. Each store keeps its
// state in memory behind a signal, persists it through a storage.Store,
// and notifies subscribers synchronously after every mutation.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/signal"
	"github.com/dukerupert/sif/internal/storage"
)

// cartKeyPrefix namespaces cart state in the backing store.
const cartKeyPrefix = "cart:"

// CartStore holds the shopping cart for one session. All mutations are
// serialized by a mutex; reads return copies so callers can't alias
// internal state.
//
// Persistence is best-effort: a failed write is logged but does not roll
// back the in-memory state, so the UI stays responsive even when the
// backing store is briefly unavailable.
type CartStore struct {
	mu     sync.Mutex
	items  *signal.Value[[]domain.CartItem]
	store  storage.Store
	key    string
	logger *slog.Logger
}

// NewCartStore creates a cart store for the given session ID, loading any
// previously persisted state. A corrupt persisted blob is discarded with
// a warning rather than failing construction.
func NewCartStore(ctx context.Context, st storage.Store, sessionID string, logger *slog.Logger) *CartStore {
	c := &CartStore{
		items:  signal.New([]domain.CartItem(nil)),
		store:  st,
		key:    cartKeyPrefix + sessionID,
		logger: logger.With("component", "cart_store", "session_id", sessionID),
	}
	c.load(ctx)
	return c
}

func (c *CartStore) load(ctx context.Context) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !storage.IsNotFound(err) {
			c.logger.Warn("failed to load persisted cart", "error", err)
		}
		return
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("discarding corrupt persisted cart", "error", err)
		return
	}

	c.items.Set(items)
}

func (c *CartStore) persist(ctx context.Context, items []domain.CartItem) {
	data, err := json.Marshal(items)
	if err != nil {
		c.logger.Error("failed to encode cart", "error", err)
		return
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		c.logger.Warn("failed to persist cart", "error", err)
	}
}

// Add puts quantity units of the product variant into the cart. Lines are
// merged by (product, size, color): adding an existing variant increments
// its quantity. A product with size or color options requires a selection.
func (c *CartStore) Add(ctx context.Context, product domain.Product, size, color string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if len(product.Sizes) > 0 && size == "" {
		return domain.ErrSizeRequired
	}
	if len(product.Colors) > 0 && color == "" {
		return domain.ErrColorRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := cloneItems(c.items.Get())
	key := domain.CartItemKey{ProductID: product.ID, Size: size, Color: color}

	merged := false
	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.CartItem{
			Product:  product,
			Size:     size,
			Color:    color,
			Quantity: quantity,
		})
	}

	c.items.Set(items)
	c.persist(ctx, items)
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity of
// zero or less removes the line, which succeeds even if no line matches.
// A positive quantity for an absent line returns ErrCartItemNotFound.
func (c *CartStore) UpdateQuantity(ctx context.Context, key domain.CartItemKey, quantity int) error {
	if quantity <= 0 {
		return c.Remove(ctx, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := cloneItems(c.items.Get())
	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity = quantity
			c.items.Set(items)
			c.persist(ctx, items)
			return nil
		}
	}

	return domain.ErrCartItemNotFound
}

// Remove deletes the line matching key. Removing a line that is not in
// the cart is a no-op, not an error.
func (c *CartStore) Remove(ctx context.Context, key domain.CartItemKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := cloneItems(c.items.Get())
	for i := range items {
		if items[i].Key() == key {
			items = append(items[:i], items[i+1:]...)
			c.items.Set(items)
			c.persist(ctx, items)
			break
		}
	}

	return nil
}

// Clear empties the cart.
func (c *CartStore) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Set(nil)
	if err := c.store.Delete(ctx, c.key); err != nil {
		c.logger.Warn("failed to clear persisted cart", "error", err)
	}
}

// Items returns a copy of the cart lines in insertion order.
func (c *CartStore) Items() []domain.CartItem {
	return cloneItems(c.items.Get())
}

// ItemCount returns the total number of units across all lines.
func (c *CartStore) ItemCount() int {
	count := 0
	for _, item := range c.items.Get() {
		count += item.Quantity
	}
	return count
}

// SubtotalCents returns the sum of line subtotals.
func (c *CartStore) SubtotalCents() int64 {
	var subtotal int64
	for _, item := range c.items.Get() {
		subtotal += item.LineSubtotalCents()
	}
	return subtotal
}

// Summary returns the items with derived totals in one snapshot.
func (c *CartStore) Summary() domain.CartSummary {
	items := c.Items()

	count := 0
	var subtotal int64
	for _, item := range items {
		count += item.Quantity
		subtotal += item.LineSubtotalCents()
	}

	return domain.CartSummary{
		Items:         items,
		ItemCount:     count,
		SubtotalCents: subtotal,
	}
}

// Subscribe registers fn to be called with the cart lines after every
// mutation. fn is invoked immediately with the current lines.
func (c *CartStore) Subscribe(fn func([]domain.CartItem)) signal.Unsubscribe {
	return c.items.Subscribe(fn)
}

func cloneItems(items []domain.CartItem) []domain.CartItem {
	if items == nil {
		return nil
	}
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}
