package api

import "context"

// FetchCompare retrieves the compare list as bare product ids. Full products
// must be resolved against the catalog by the caller.
func (c *Client) FetchCompare(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.get(ctx, "/compare", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddCompareItem mirrors a locally added compare entry to the server.
func (c *Client) AddCompareItem(ctx context.Context, productID string) error {
	body := struct {
		ProductID string `json:"product_id"`
	}{ProductID: productID}
	return c.post(ctx, "/compare", body, nil)
}

// RemoveCompareItem removes a product from the server compare list.
func (c *Client) RemoveCompareItem(ctx context.Context, productID string) error {
	return c.delete(ctx, "/compare/"+productID, nil, nil)
}

// ClearCompare empties the server compare list.
func (c *Client) ClearCompare(ctx context.Context) error {
	return c.delete(ctx, "/compare/clear", nil, nil)
}
