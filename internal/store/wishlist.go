package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/signal"
	"github.com/dukerupert/sif/internal/storage"
)

// wishlistKeyPrefix namespaces wishlist state in the backing store.
const wishlistKeyPrefix = "wishlist:"

// WishlistAPI is the remote wishlist surface used when a signed-in user
// syncs their locally saved items. Implemented by the api client.
type WishlistAPI interface {
	ListWishlist(ctx context.Context) ([]domain.WishlistItem, error)
	WishlistProducts(ctx context.Context) ([]domain.Product, error)
	AddToWishlist(ctx context.Context, productID int64) error
	RemoveFromWishlist(ctx context.Context, productID int64) error
}

// WishlistStore holds a user's saved products. Entries are keyed by
// product ID; adds are idempotent and removes of absent products are
// no-ops. Like CartStore, persistence is best-effort.
type WishlistStore struct {
	mu     sync.Mutex
	items  *signal.Value[[]domain.WishlistItem]
	store  storage.Store
	key    string
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewWishlistStore creates a wishlist store for the given owner key
// (session ID for guests, user ID for signed-in users), loading any
// previously persisted state.
func NewWishlistStore(ctx context.Context, st storage.Store, owner string, logger *slog.Logger) *WishlistStore {
	w := &WishlistStore{
		items:  signal.New([]domain.WishlistItem(nil)),
		store:  st,
		key:    wishlistKeyPrefix + owner,
		logger: logger.With("component", "wishlist_store", "owner", owner),
		now:    time.Now,
	}
	w.load(ctx)
	return w
}

func (w *WishlistStore) load(ctx context.Context) {
	data, err := w.store.Get(ctx, w.key)
	if err != nil {
		if !storage.IsNotFound(err) {
			w.logger.Warn("failed to load persisted wishlist", "error", err)
		}
		return
	}

	var items []domain.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		w.logger.Warn("discarding corrupt persisted wishlist", "error", err)
		return
	}

	w.items.Set(items)
}

func (w *WishlistStore) persist(ctx context.Context, items []domain.WishlistItem) {
	data, err := json.Marshal(items)
	if err != nil {
		w.logger.Error("failed to encode wishlist", "error", err)
		return
	}
	if err := w.store.Put(ctx, w.key, data); err != nil {
		w.logger.Warn("failed to persist wishlist", "error", err)
	}
}

// Add saves the product. Adding a product that is already saved is a
// no-op and reports false; a fresh add reports true.
func (w *WishlistStore) Add(ctx context.Context, product domain.Product) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := cloneWishlist(w.items.Get())
	for _, item := range items {
		if item.Product.ID == product.ID {
			return false
		}
	}

	items = append(items, domain.WishlistItem{Product: product, AddedAt: w.now()})
	w.items.Set(items)
	w.persist(ctx, items)
	return true
}

// Remove deletes the product from the wishlist. Removing a product that
// is not saved is a no-op and reports false.
func (w *WishlistStore) Remove(ctx context.Context, productID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := cloneWishlist(w.items.Get())
	for i, item := range items {
		if item.Product.ID == productID {
			items = append(items[:i], items[i+1:]...)
			w.items.Set(items)
			w.persist(ctx, items)
			return true
		}
	}

	return false
}

// Toggle adds the product if absent and removes it if present.
// Reports true when the product ends up in the wishlist.
func (w *WishlistStore) Toggle(ctx context.Context, product domain.Product) bool {
	if w.Remove(ctx, product.ID) {
		return false
	}
	w.Add(ctx, product)
	return true
}

// Contains reports whether the product is saved.
func (w *WishlistStore) Contains(productID int64) bool {
	for _, item := range w.items.Get() {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the saved items in the order they were added.
func (w *WishlistStore) Items() []domain.WishlistItem {
	return cloneWishlist(w.items.Get())
}

// Count returns the number of saved products.
func (w *WishlistStore) Count() int {
	return len(w.items.Get())
}

// Clear removes every saved product.
func (w *WishlistStore) Clear(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items.Set(nil)
	if err := w.store.Delete(ctx, w.key); err != nil {
		w.logger.Warn("failed to clear persisted wishlist", "error", err)
	}
}

// Subscribe registers fn to be called with the saved items after every
// mutation. fn is invoked immediately with the current items.
func (w *WishlistStore) Subscribe(fn func([]domain.WishlistItem)) signal.Unsubscribe {
	return w.items.Subscribe(fn)
}

// Sync reconciles the local wishlist with the signed-in user's remote
// one. Local items missing from the server are pushed first, then the
// server's list is adopted as authoritative. Items the server rejects
// are dropped with a warning rather than failing the whole sync.
func (w *WishlistStore) Sync(ctx context.Context, api WishlistAPI) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	remote, err := api.ListWishlist(ctx)
	if err != nil {
		return domain.WrapError(err, domain.ErrorCode(err), "wishlist.sync", "failed to fetch remote wishlist")
	}

	remoteIDs := make(map[int64]bool, len(remote))
	for _, item := range remote {
		remoteIDs[item.Product.ID] = true
	}

	for _, item := range w.items.Get() {
		if remoteIDs[item.Product.ID] {
			continue
		}
		if err := api.AddToWishlist(ctx, item.Product.ID); err != nil {
			w.logger.Warn("failed to push wishlist item", "product_id", item.Product.ID, "error", err)
			continue
		}
		remote = append(remote, item)
	}

	w.items.Set(remote)
	w.persist(ctx, remote)
	return nil
}

// Products fetches full product details for the signed-in user's saved
// items from the backend.
func (w *WishlistStore) Products(ctx context.Context, api WishlistAPI) ([]domain.Product, error) {
	products, err := api.WishlistProducts(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "wishlist.products", "failed to fetch wishlist products")
	}
	return products, nil
}

func cloneWishlist(items []domain.WishlistItem) []domain.WishlistItem {
	if items == nil {
		return nil
	}
	out := make([]domain.WishlistItem, len(items))
	copy(out, items)
	return out
}
