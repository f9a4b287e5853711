package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/storage"
)

const wishlistDocName = "wishlist"

// ErrNotSignedIn is returned when a wishlist mutation needs a session.
// Callers redirect to the login flow instead of queuing the action.
var ErrNotSignedIn = errors.New("sign in required")

// WishlistAPI is the slice of the REST client the wishlist store needs.
type WishlistAPI interface {
	FetchWishlist(ctx context.Context) ([]api.WishlistItem, error)
	AddWishlistItem(ctx context.Context, productID string) error
	RemoveWishlistItem(ctx context.Context, productID string) error
}

type wishlistDoc struct {
	Items []api.WishlistItem `toml:"items"`
}

// Wishlist is a read-through cache of the server-owned wishlist. Unlike cart
// and compare there is no optimistic mutation model: adds go to the server
// first and the cache refreshes from the authoritative list afterwards.
type Wishlist struct {
	mu      sync.Mutex
	items   []api.WishlistItem
	api     WishlistAPI
	storage storage.Adapter
	tokens  api.TokenSource
	notify  Notifier
}

// NewWishlist builds a wishlist cache, restoring the persisted copy.
func NewWishlist(client WishlistAPI, adapter storage.Adapter, tokens api.TokenSource, notify Notifier) *Wishlist {
	if notify == nil {
		notify = NopNotifier{}
	}
	w := &Wishlist{
		api:     client,
		storage: adapter,
		tokens:  tokens,
		notify:  notify,
	}
	var doc wishlistDoc
	if ok, err := adapter.Load(wishlistDocName, &doc); err == nil && ok {
		w.items = doc.Items
	}
	return w
}

// AddItem adds a product to the wishlist, server first, then refreshes the
// cache. Requires a signed-in session.
func (w *Wishlist) AddItem(ctx context.Context, productID string) error {
	if !w.authenticated() {
		return ErrNotSignedIn
	}
	if err := w.api.AddWishlistItem(ctx, productID); err != nil {
		w.notify.Error("Could not add product to wishlist")
		return err
	}
	w.notify.Success("Added to wishlist")
	return w.SyncWithServer(ctx)
}

// RemoveItem filters the cached list immediately for a snappier UI, but the
// server call is still required; its error propagates without rollback since
// the refresh after the next sync restores the authoritative list.
func (w *Wishlist) RemoveItem(ctx context.Context, productID string) error {
	if !w.authenticated() {
		return ErrNotSignedIn
	}

	w.mu.Lock()
	w.items = slices.DeleteFunc(w.items, func(item api.WishlistItem) bool {
		return item.ProductID == productID
	})
	w.persistLocked()
	w.mu.Unlock()

	if err := w.api.RemoveWishlistItem(ctx, productID); err != nil {
		w.notify.Error("Could not remove product from wishlist")
		return err
	}
	return w.SyncWithServer(ctx)
}

// SyncWithServer replaces the cache with the server's list.
func (w *Wishlist) SyncWithServer(ctx context.Context) error {
	if !w.authenticated() {
		return nil
	}
	items, err := w.api.FetchWishlist(ctx)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.items = items
	w.persistLocked()
	w.mu.Unlock()
	return nil
}

// Reset drops the cached list, in memory and on disk.
func (w *Wishlist) Reset() {
	w.mu.Lock()
	w.items = nil
	w.mu.Unlock()
	_ = w.storage.Delete(wishlistDocName)
}

// Contains reports whether a product is on the cached list.
func (w *Wishlist) Contains(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.ContainsFunc(w.items, func(item api.WishlistItem) bool {
		return item.ProductID == productID
	})
}

// Items returns a defensive copy of the cached list.
func (w *Wishlist) Items() []api.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.items)
}

func (w *Wishlist) authenticated() bool {
	return w.tokens != nil && w.tokens.Token() != ""
}

func (w *Wishlist) persistLocked() {
	_ = w.storage.Save(wishlistDocName, wishlistDoc{Items: w.items})
}
