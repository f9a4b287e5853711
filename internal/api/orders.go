package api

import "context"

// CreateOrderRequest carries the checkout payload for a new order.
type CreateOrderRequest struct {
	Address string      `json:"address"`
	Items   []OrderItem `json:"items"`
}

// FetchOrders retrieves the caller's order history.
func (c *Client) FetchOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchOrder retrieves a single order by id.
func (c *Client) FetchOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.get(ctx, "/orders/"+id, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder requests cancellation of an order.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.patch(ctx, "/orders/"+id+"/cancel", nil, nil)
}

// FetchOrderDocument downloads an order document (receipt, invoice) as a blob.
func (c *Client) FetchOrderDocument(ctx context.Context, id, docType string) ([]byte, error) {
	return c.doBlob(ctx, "/orders/document/"+id+"/"+docType)
}
