package api

import (
	"context"
	"net/http"

	"gamestore/internal/domain/model"
)

// FetchUser は GET /users。自分のプロフィール。
// 所持ゲームはID列で返るので、詳細が要るならGetGameを重ねる（storeのUserStoreがやる）。
func (c *Client) FetchUser(ctx context.Context) (model.User, error) {
	var u model.User
	if err := c.doJSON(ctx, http.MethodGet, "/users", nil, nil, &u, "Failed to fetch user data"); err != nil {
		return model.User{}, err
	}
	return u, nil
}
