package api

import (
	"context"
	"net/http"

	"gamestore/internal/domain/model"
)

// CreateOrder は POST /checkout。
// idempotencyKeyはSubmitごとに生成して付ける（再送しても注文は1件）。
func (c *Client) CreateOrder(ctx context.Context, form model.OrderForm, idempotencyKey string) (model.Order, error) {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set("X-Idempotency-Key", idempotencyKey)
	}

	var order model.Order
	if err := c.doJSON(ctx, http.MethodPost, "/checkout", header, form, &order, "Error creating order"); err != nil {
		return model.Order{}, err
	}
	return order, nil
}
