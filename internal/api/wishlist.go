package api

import "context"

// FetchWishlist retrieves the server-owned wishlist.
func (c *Client) FetchWishlist(ctx context.Context) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := c.get(ctx, "/wishlist", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddWishlistItem adds a product to the wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, productID string) error {
	body := struct {
		ProductID string `json:"product_id"`
	}{ProductID: productID}
	return c.post(ctx, "/wishlist", body, nil)
}

// RemoveWishlistItem removes a product from the wishlist.
func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) error {
	return c.delete(ctx, "/wishlist/"+productID, nil, nil)
}
