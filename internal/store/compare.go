package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/storage"
)

const compareDocName = "compare"

// MaxCompareItems caps the comparison list.
const MaxCompareItems = 3

var (
	// ErrCompareFull is returned when the list already holds MaxCompareItems.
	ErrCompareFull = errors.New("compare list is full")
	// ErrAlreadyCompared is returned for a product already on the list.
	ErrAlreadyCompared = errors.New("product already in compare list")
)

// ProductResolver hydrates full products for a list of ids, typically against
// the catalog cache. The compare store does not own product hydration.
type ProductResolver func(ctx context.Context, ids []string) ([]api.Product, error)

// CompareAPI is the slice of the REST client the compare store needs.
type CompareAPI interface {
	FetchCompare(ctx context.Context) ([]string, error)
	AddCompareItem(ctx context.Context, productID string) error
	RemoveCompareItem(ctx context.Context, productID string) error
	ClearCompare(ctx context.Context) error
}

type compareState struct {
	Items []api.Product
	IDs   []string
}

type compareDoc struct {
	Items []api.Product `toml:"items"`
	IDs   []string      `toml:"ids"`
}

// Compare holds an ordered list of full product snapshots for side-by-side
// comparison. Guests keep the list purely in durable client storage; signed-in
// users additionally mirror it to the server.
type Compare struct {
	mu      sync.Mutex
	state   compareState
	api     CompareAPI
	storage storage.Adapter
	tokens  api.TokenSource
	notify  Notifier
	resolve ProductResolver
}

// NewCompare builds a compare store, restoring persisted state. resolve is
// required for SyncWithServer, which receives bare ids from the backend.
func NewCompare(client CompareAPI, adapter storage.Adapter, tokens api.TokenSource, notify Notifier, resolve ProductResolver) *Compare {
	if notify == nil {
		notify = NopNotifier{}
	}
	c := &Compare{
		api:     client,
		storage: adapter,
		tokens:  tokens,
		notify:  notify,
		resolve: resolve,
	}
	var doc compareDoc
	if ok, err := adapter.Load(compareDocName, &doc); err == nil && ok {
		c.state = compareState{Items: doc.Items, IDs: doc.IDs}
	}
	return c
}

// AddItem appends a product to the list. Duplicates and additions beyond the
// cap are rejected before any state change or server call.
func (c *Compare) AddItem(ctx context.Context, product api.Product) error {
	c.mu.Lock()
	if slices.Contains(c.state.IDs, product.ID) {
		c.mu.Unlock()
		c.notify.Error("Product is already in your compare list")
		return ErrAlreadyCompared
	}
	if len(c.state.Items) >= MaxCompareItems {
		c.mu.Unlock()
		c.notify.Error("You can compare up to 3 products")
		return ErrCompareFull
	}
	c.mu.Unlock()

	cmd := command[compareState]{
		snapshot: c.snapshotState,
		apply: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.state.Items = append(c.state.Items, product)
			c.state.IDs = append(c.state.IDs, product.ID)
			c.persistLocked()
		},
		restore: c.restoreState,
	}
	if c.authenticated() {
		cmd.call = func(ctx context.Context) error {
			return c.api.AddCompareItem(ctx, product.ID)
		}
	}
	if err := cmd.run(ctx); err != nil {
		c.notify.Error("Could not add product to compare list")
		return err
	}
	c.notify.Success("Added to compare list")
	return nil
}

// RemoveItem removes a product by id. Removing a missing id is a no-op.
func (c *Compare) RemoveItem(ctx context.Context, productID string) error {
	c.mu.Lock()
	present := slices.Contains(c.state.IDs, productID)
	c.mu.Unlock()
	if !present {
		return nil
	}

	cmd := command[compareState]{
		snapshot: c.snapshotState,
		apply: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.state.Items = slices.DeleteFunc(c.state.Items, func(p api.Product) bool {
				return p.ID == productID
			})
			c.state.IDs = slices.DeleteFunc(c.state.IDs, func(id string) bool {
				return id == productID
			})
			c.persistLocked()
		},
		restore: c.restoreState,
	}
	if c.authenticated() {
		cmd.call = func(ctx context.Context) error {
			return c.api.RemoveCompareItem(ctx, productID)
		}
	}
	if err := cmd.run(ctx); err != nil {
		c.notify.Error("Could not remove product from compare list")
		return err
	}
	return nil
}

// SyncWithServer replaces the local id list with the server's and hydrates
// full products through the injected resolver. A resolver failure keeps the
// ids so a later catalog refresh can fill the gap.
func (c *Compare) SyncWithServer(ctx context.Context) error {
	if !c.authenticated() {
		return nil
	}
	ids, err := c.api.FetchCompare(ctx)
	if err != nil {
		return err
	}

	var items []api.Product
	if c.resolve != nil && len(ids) > 0 {
		if resolved, err := c.resolve(ctx, ids); err == nil {
			items = resolved
		}
	}

	c.mu.Lock()
	c.state = compareState{Items: items, IDs: ids}
	c.persistLocked()
	c.mu.Unlock()
	return nil
}

// Clear empties the list. The server clear is best effort, no rollback.
func (c *Compare) Clear(ctx context.Context) {
	c.mu.Lock()
	c.state = compareState{}
	c.persistLocked()
	c.mu.Unlock()

	if c.authenticated() {
		_ = c.api.ClearCompare(ctx)
	}
}

// Reset drops all local state, in memory and on disk.
func (c *Compare) Reset() {
	c.mu.Lock()
	c.state = compareState{}
	c.mu.Unlock()
	_ = c.storage.Delete(compareDocName)
}

// Items returns a defensive copy of the compared products in order.
func (c *Compare) Items() []api.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.Items)
}

// IDs returns a defensive copy of the compared product ids in order.
func (c *Compare) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.IDs)
}

func (c *Compare) authenticated() bool {
	return c.tokens != nil && c.tokens.Token() != ""
}

func (c *Compare) snapshotState() compareState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return compareState{
		Items: slices.Clone(c.state.Items),
		IDs:   slices.Clone(c.state.IDs),
	}
}

func (c *Compare) restoreState(snap compareState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = snap
	c.persistLocked()
}

func (c *Compare) persistLocked() {
	_ = c.storage.Save(compareDocName, compareDoc{Items: c.state.Items, IDs: c.state.IDs})
}
