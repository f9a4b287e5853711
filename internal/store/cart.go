package store

import (
	"context"
	"sync"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/storage"
)

const cartDocName = "cart"

// CartEntry is one cart line for a product/variation pair.
type CartEntry struct {
	Quantity int     `toml:"quantity"`
	Price    float64 `toml:"price"`
}

// cartItems maps productID -> variationKey -> entry. A quantity reaching zero
// removes the entry; an empty variation map removes the product key.
type cartItems map[string]map[string]CartEntry

type cartDoc struct {
	Items cartItems `toml:"items"`
}

// CartAPI is the slice of the REST client the cart store needs.
type CartAPI interface {
	FetchCart(ctx context.Context) (*api.CartSnapshot, error)
	AddCartItem(ctx context.Context, item api.CartItem) error
	UpdateCartItem(ctx context.Context, item api.CartItem) error
	RemoveCartItem(ctx context.Context, productID, variationKey string) error
	SyncCart(ctx context.Context, items []api.CartItem) error
	ClearCart(ctx context.Context) error
}

// Cart is the persistent client-side cart. Mutations apply to local state
// synchronously and mirror to the server when a session token is present; a
// failed mirror rolls the local state back to the pre-mutation snapshot.
type Cart struct {
	mu      sync.Mutex
	items   cartItems
	synced  bool // one-shot guard: guest replay runs once per login session
	api     CartAPI
	storage storage.Adapter
	tokens  api.TokenSource
	notify  Notifier
}

// NewCart builds a cart backed by the given API slice and storage adapter,
// restoring any persisted guest state.
func NewCart(client CartAPI, adapter storage.Adapter, tokens api.TokenSource, notify Notifier) *Cart {
	if notify == nil {
		notify = NopNotifier{}
	}
	c := &Cart{
		items:   make(cartItems),
		api:     client,
		storage: adapter,
		tokens:  tokens,
		notify:  notify,
	}
	var doc cartDoc
	if ok, err := adapter.Load(cartDocName, &doc); err == nil && ok && doc.Items != nil {
		c.items = doc.Items
	}
	return c
}

// AddItem adds quantity (default 1) to the line for the product/variation
// pair, creating it when absent. The price comes from the variation; products
// without variants pass a bare variation carrying the product price. The
// success notice fires regardless of the server outcome; the data still rolls
// back when the mirror fails.
func (c *Cart) AddItem(ctx context.Context, productID string, variation *api.Variation, quantity int) error {
	if productID == "" {
		return nil
	}
	if quantity <= 0 {
		quantity = 1
	}
	key := variation.Key()
	var price float64
	if variation != nil {
		price = variation.Price
	}

	c.notify.Success("Added to cart")

	cmd := command[cartItems]{
		snapshot: c.snapshotItems,
		apply: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			variations, ok := c.items[productID]
			if !ok {
				variations = make(map[string]CartEntry)
				c.items[productID] = variations
			}
			entry, ok := variations[key]
			if !ok {
				entry = CartEntry{Quantity: 0, Price: price}
			}
			entry.Quantity += quantity
			variations[key] = entry
			c.persistLocked()
		},
		restore: c.restoreItems,
		call:    nil,
	}
	if c.authenticated() {
		cmd.call = func(ctx context.Context) error {
			return c.api.AddCartItem(ctx, api.CartItem{
				ProductID:    productID,
				VariationKey: key,
				Quantity:     quantity,
				Price:        price,
			})
		}
	}
	if err := cmd.run(ctx); err != nil {
		c.notify.Error("Could not add item to cart")
		return err
	}
	return nil
}

// UpdateQuantity overwrites the quantity of an existing line. A quantity of
// zero or less delegates to RemoveItem.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int, variationKey string) error {
	if quantity <= 0 {
		return c.RemoveItem(ctx, productID, variationKey)
	}

	c.mu.Lock()
	entry, ok := c.items[productID][variationKey]
	c.mu.Unlock()
	if !ok {
		return nil
	}

	cmd := command[cartItems]{
		snapshot: c.snapshotItems,
		apply: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if variations, ok := c.items[productID]; ok {
				if e, ok := variations[variationKey]; ok {
					e.Quantity = quantity
					variations[variationKey] = e
					c.persistLocked()
				}
			}
		},
		restore: c.restoreItems,
	}
	if c.authenticated() {
		cmd.call = func(ctx context.Context) error {
			return c.api.UpdateCartItem(ctx, api.CartItem{
				ProductID:    productID,
				VariationKey: variationKey,
				Quantity:     quantity,
				Price:        entry.Price,
			})
		}
	}
	if err := cmd.run(ctx); err != nil {
		c.notify.Error("Could not update cart")
		return err
	}
	return nil
}

// RemoveItem deletes the line for the product/variation pair. Removing a
// missing line is a no-op and issues no server call.
func (c *Cart) RemoveItem(ctx context.Context, productID, variationKey string) error {
	c.mu.Lock()
	_, ok := c.items[productID][variationKey]
	c.mu.Unlock()
	if !ok {
		return nil
	}

	cmd := command[cartItems]{
		snapshot: c.snapshotItems,
		apply: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if variations, ok := c.items[productID]; ok {
				delete(variations, variationKey)
				if len(variations) == 0 {
					delete(c.items, productID)
				}
				c.persistLocked()
			}
		},
		restore: c.restoreItems,
	}
	if c.authenticated() {
		cmd.call = func(ctx context.Context) error {
			return c.api.RemoveCartItem(ctx, productID, variationKey)
		}
	}
	if err := cmd.run(ctx); err != nil {
		c.notify.Error("Could not remove item from cart")
		return err
	}
	return nil
}

// Clear empties the cart. The server clear is best effort; clearing is
// treated as eventually consistent and never rolled back.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	c.items = make(cartItems)
	c.persistLocked()
	c.mu.Unlock()

	if c.authenticated() {
		_ = c.api.ClearCart(ctx)
	}
}

// SyncWithServer merges guest state into the server cart on login: local
// lines are replayed additively in one batch, then local state is replaced
// wholesale by the server snapshot. Runs at most once per login session.
func (c *Cart) SyncWithServer(ctx context.Context) error {
	if !c.authenticated() {
		return nil
	}
	c.mu.Lock()
	if c.synced {
		c.mu.Unlock()
		return nil
	}
	c.synced = true
	local := c.wireItemsLocked()
	c.mu.Unlock()

	if len(local) > 0 {
		if err := c.api.SyncCart(ctx, local); err != nil {
			c.mu.Lock()
			c.synced = false
			c.mu.Unlock()
			return err
		}
	}

	snapshot, err := c.api.FetchCart(ctx)
	if err != nil {
		return err
	}
	items := make(cartItems)
	for _, item := range snapshot.Items {
		variations, ok := items[item.ProductID]
		if !ok {
			variations = make(map[string]CartEntry)
			items[item.ProductID] = variations
		}
		variations[item.VariationKey] = CartEntry{Quantity: item.Quantity, Price: item.Price}
	}

	c.mu.Lock()
	c.items = items
	c.persistLocked()
	c.mu.Unlock()
	return nil
}

// Reset drops all local cart state, in memory and on disk, and re-arms the
// login sync. Used on logout and forced 401 logout.
func (c *Cart) Reset() {
	c.mu.Lock()
	c.items = make(cartItems)
	c.synced = false
	c.mu.Unlock()
	_ = c.storage.Delete(cartDocName)
}

// Count returns the total quantity across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, variations := range c.items {
		for _, entry := range variations {
			total += entry.Quantity
		}
	}
	return total
}

// Total returns the sum of price x quantity across all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, variations := range c.items {
		for _, entry := range variations {
			total += entry.Price * float64(entry.Quantity)
		}
	}
	return total
}

// Entry returns the line for a product/variation pair, if present.
func (c *Cart) Entry(productID, variationKey string) (CartEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[productID][variationKey]
	return entry, ok
}

// Items returns a defensive copy of the cart lines in wire form.
func (c *Cart) Items() []api.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wireItemsLocked()
}

func (c *Cart) wireItemsLocked() []api.CartItem {
	var items []api.CartItem
	for productID, variations := range c.items {
		for key, entry := range variations {
			items = append(items, api.CartItem{
				ProductID:    productID,
				VariationKey: key,
				Quantity:     entry.Quantity,
				Price:        entry.Price,
			})
		}
	}
	return items
}

func (c *Cart) authenticated() bool {
	return c.tokens != nil && c.tokens.Token() != ""
}

func (c *Cart) snapshotItems() cartItems {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneCartItems(c.items)
}

func (c *Cart) restoreItems(snap cartItems) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = snap
	c.persistLocked()
}

func (c *Cart) persistLocked() {
	_ = c.storage.Save(cartDocName, cartDoc{Items: c.items})
}

func cloneCartItems(items cartItems) cartItems {
	dup := make(cartItems, len(items))
	for productID, variations := range items {
		inner := make(map[string]CartEntry, len(variations))
		for key, entry := range variations {
			inner[key] = entry
		}
		dup[productID] = inner
	}
	return dup
}
