package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// FetchCart retrieves the authoritative server cart.
func (c *Client) FetchCart(ctx context.Context) (*CartSnapshot, error) {
	var snapshot CartSnapshot
	if err := c.get(ctx, "/cart", &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// AddCartItem adds quantity to the server-side line for the given
// product/variation pair. The server treats quantity as additive.
func (c *Client) AddCartItem(ctx context.Context, item CartItem) error {
	return c.post(ctx, "/cart", item, nil)
}

// UpdateCartItem overwrites the quantity of an existing line.
func (c *Client) UpdateCartItem(ctx context.Context, item CartItem) error {
	return c.put(ctx, "/cart", item, nil)
}

// RemoveCartItem deletes a line by product id and variation key.
func (c *Client) RemoveCartItem(ctx context.Context, productID, variationKey string) error {
	body := CartItem{ProductID: productID, VariationKey: variationKey}
	return c.delete(ctx, "/cart", body, nil)
}

// SyncCart replays guest-accumulated lines against the server cart. The
// idempotency key lets the backend drop a duplicate replay of the same batch.
func (c *Client) SyncCart(ctx context.Context, items []CartItem) error {
	body := struct {
		Items []CartItem `json:"items"`
	}{Items: items}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	return c.do(ctx, http.MethodPost, "/cart/sync", body, nil, headers)
}

// ClearCart empties the server cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.delete(ctx, "/cart/clear", nil, nil)
}
