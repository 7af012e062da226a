package api

import (
	"context"
	"net/http"

	"gamestore/internal/domain/model"
)

// 更新系のレスポンスは {"cart": {...}} に包まれて返る
type cartEnvelope struct {
	Cart model.CartSnapshot `json:"cart"`
}

type addCartItemRequest struct {
	GameID   string `json:"gameId"`
	Quantity int64  `json:"quantity"`
}

type cartItemRef struct {
	GameID string `json:"gameId"`
}

// FetchCart は GET /cart。返るのはスナップショットそのもの。
func (c *Client) FetchCart(ctx context.Context) (model.CartSnapshot, error) {
	var snap model.CartSnapshot
	if err := c.doJSON(ctx, http.MethodGet, "/cart", nil, nil, &snap, "Failed to fetch cart"); err != nil {
		return model.CartSnapshot{}, err
	}
	return snap, nil
}

// AddCartItem は POST /cart/items。同一ゲームのマージはサーバ判断。
func (c *Client) AddCartItem(ctx context.Context, gameID string, quantity int64) (model.CartSnapshot, error) {
	var env cartEnvelope
	req := addCartItemRequest{GameID: gameID, Quantity: quantity}
	if err := c.doJSON(ctx, http.MethodPost, "/cart/items", nil, req, &env, "Failed to add item to cart"); err != nil {
		return model.CartSnapshot{}, err
	}
	return env.Cart, nil
}

// RemoveCartItem は DELETE /cart/items（gameIdはボディで送る）。
func (c *Client) RemoveCartItem(ctx context.Context, gameID string) (model.CartSnapshot, error) {
	var env cartEnvelope
	if err := c.doJSON(ctx, http.MethodDelete, "/cart/items", nil, cartItemRef{GameID: gameID}, &env, "Failed to remove item from cart"); err != nil {
		return model.CartSnapshot{}, err
	}
	return env.Cart, nil
}

// IncreaseCartQuantity は対象明細の数量を+1する。
func (c *Client) IncreaseCartQuantity(ctx context.Context, gameID string) (model.CartSnapshot, error) {
	var env cartEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/cart/increase", nil, cartItemRef{GameID: gameID}, &env, "Failed to increase item quantity"); err != nil {
		return model.CartSnapshot{}, err
	}
	return env.Cart, nil
}

// DecreaseCartQuantity は数量を-1する。
// 1を下回るときの挙動（明細削除か1で据え置きか）はサーバ側のポリシー。
// クライアントは返ってきた明細をそのまま信じる。
func (c *Client) DecreaseCartQuantity(ctx context.Context, gameID string) (model.CartSnapshot, error) {
	var env cartEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/cart/decrease", nil, cartItemRef{GameID: gameID}, &env, "Failed to decrease item quantity"); err != nil {
		return model.CartSnapshot{}, err
	}
	return env.Cart, nil
}

// ClearCart は POST /cart（空ボディ）。成功/失敗しか見ない。
func (c *Client) ClearCart(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/cart", nil, struct{}{}, nil, "Failed to clear cart")
}
