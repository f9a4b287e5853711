package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// InitiatePaymentRequest starts an M-Pesa STK push for the current cart.
type InitiatePaymentRequest struct {
	PhoneNumber string  `json:"phone_number"`
	TotalAmount float64 `json:"total_amount"`
	Address     string  `json:"address"`
}

// RetryPaymentRequest re-sends the STK push for an existing order reference.
type RetryPaymentRequest struct {
	OrderReference string `json:"order_reference"`
	PhoneNumber    string `json:"phone_number"`
}

// InitiateMpesa requests an STK push and returns the order reference to poll.
func (c *Client) InitiateMpesa(ctx context.Context, req InitiatePaymentRequest) (*PaymentInit, error) {
	var init PaymentInit
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	if err := c.do(ctx, http.MethodPost, "/payments/mpesa/initiate", req, &init, headers); err != nil {
		return nil, err
	}
	return &init, nil
}

// RetryMpesa re-triggers the STK push for a failed or timed-out attempt.
func (c *Client) RetryMpesa(ctx context.Context, req RetryPaymentRequest) (*PaymentInit, error) {
	var init PaymentInit
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	if err := c.do(ctx, http.MethodPost, "/payments/mpesa/retry", req, &init, headers); err != nil {
		return nil, err
	}
	return &init, nil
}

// FetchPaymentStatus polls the payment state for an order reference.
func (c *Client) FetchPaymentStatus(ctx context.Context, orderReference string) (*PaymentStatus, error) {
	var status PaymentStatus
	if err := c.get(ctx, "/payments/status/"+orderReference, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
