package store

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/storage"
)

type fakeWishlistAPI struct {
	items []api.WishlistItem

	errAdd    error
	errRemove error

	fetchCalls int
}

func (f *fakeWishlistAPI) FetchWishlist(context.Context) ([]api.WishlistItem, error) {
	f.fetchCalls++
	return slices.Clone(f.items), nil
}

func (f *fakeWishlistAPI) AddWishlistItem(_ context.Context, productID string) error {
	if f.errAdd != nil {
		return f.errAdd
	}
	f.items = append(f.items, api.WishlistItem{ProductID: productID})
	return nil
}

func (f *fakeWishlistAPI) RemoveWishlistItem(_ context.Context, productID string) error {
	if f.errRemove != nil {
		return f.errRemove
	}
	f.items = slices.DeleteFunc(f.items, func(item api.WishlistItem) bool {
		return item.ProductID == productID
	})
	return nil
}

func TestWishlist_AddRequiresSession(t *testing.T) {
	backend := &fakeWishlistAPI{}
	wishlist := NewWishlist(backend, storage.NewMemoryAdapter(), staticToken(""), NopNotifier{})

	err := wishlist.AddItem(context.Background(), "5")
	if !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("AddItem error = %v, want ErrNotSignedIn", err)
	}
	if backend.fetchCalls != 0 || len(backend.items) != 0 {
		t.Fatal("guest add reached the server")
	}
}

func TestWishlist_AddIsServerFirstThenRefresh(t *testing.T) {
	backend := &fakeWishlistAPI{}
	wishlist := NewWishlist(backend, storage.NewMemoryAdapter(), staticToken("tok"), NopNotifier{})

	if err := wishlist.AddItem(context.Background(), "5"); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if !wishlist.Contains("5") {
		t.Fatal("cache missing item after refresh")
	}
	if backend.fetchCalls != 1 {
		t.Fatalf("fetchCalls = %d, want refresh after add", backend.fetchCalls)
	}
}

func TestWishlist_AddFailurePropagatesWithoutLocalChange(t *testing.T) {
	backend := &fakeWishlistAPI{errAdd: errors.New("boom")}
	wishlist := NewWishlist(backend, storage.NewMemoryAdapter(), staticToken("tok"), NopNotifier{})

	if err := wishlist.AddItem(context.Background(), "5"); err == nil {
		t.Fatal("AddItem returned nil error, want server failure")
	}
	if wishlist.Contains("5") {
		t.Fatal("cache changed despite server failure")
	}
}

func TestWishlist_RemoveFiltersLocallyAndPropagatesError(t *testing.T) {
	backend := &fakeWishlistAPI{
		items:     []api.WishlistItem{{ProductID: "5"}, {ProductID: "6"}},
		errRemove: errors.New("boom"),
	}
	wishlist := NewWishlist(backend, storage.NewMemoryAdapter(), staticToken("tok"), NopNotifier{})
	if err := wishlist.SyncWithServer(context.Background()); err != nil {
		t.Fatalf("SyncWithServer returned error: %v", err)
	}

	err := wishlist.RemoveItem(context.Background(), "5")
	if err == nil {
		t.Fatal("RemoveItem returned nil error, want server failure")
	}
	// The optimistic filter stands; no rollback for wishlist removals.
	if wishlist.Contains("5") {
		t.Fatal("item still cached after local filter")
	}
}

func TestWishlist_SyncReplacesCache(t *testing.T) {
	backend := &fakeWishlistAPI{items: []api.WishlistItem{{ProductID: "7", Name: "MacBook Air"}}}
	adapter := storage.NewMemoryAdapter()
	wishlist := NewWishlist(backend, adapter, staticToken("tok"), NopNotifier{})

	if err := wishlist.SyncWithServer(context.Background()); err != nil {
		t.Fatalf("SyncWithServer returned error: %v", err)
	}
	items := wishlist.Items()
	if len(items) != 1 || items[0].Name != "MacBook Air" {
		t.Fatalf("items = %#v, want server list", items)
	}
	if !adapter.Has(wishlistDocName) {
		t.Fatal("cache not persisted after sync")
	}

	// A fresh store restores the persisted cache.
	restored := NewWishlist(backend, adapter, staticToken("tok"), NopNotifier{})
	if !restored.Contains("7") {
		t.Fatal("restored cache missing persisted item")
	}
}

func TestWishlist_ResetDropsCache(t *testing.T) {
	backend := &fakeWishlistAPI{items: []api.WishlistItem{{ProductID: "7"}}}
	adapter := storage.NewMemoryAdapter()
	wishlist := NewWishlist(backend, adapter, staticToken("tok"), NopNotifier{})
	if err := wishlist.SyncWithServer(context.Background()); err != nil {
		t.Fatalf("SyncWithServer returned error: %v", err)
	}

	wishlist.Reset()
	if len(wishlist.Items()) != 0 {
		t.Fatal("cache not empty after Reset")
	}
	if adapter.Has(wishlistDocName) {
		t.Fatal("persisted cache not deleted after Reset")
	}
}
