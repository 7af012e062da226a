package api

import (
	"context"
	"net/http"

	"gamestore/internal/domain/model"
)

type wishlistResponse struct {
	Games []model.Game `json:"games"`
}

type wishlistCountResponse struct {
	Count int64 `json:"count"`
}

func (c *Client) GetWishlist(ctx context.Context) ([]model.Game, error) {
	var out wishlistResponse
	if err := c.doJSON(ctx, http.MethodGet, "/wishlist", nil, nil, &out, "Failed to fetch wishlist"); err != nil {
		return nil, err
	}
	return out.Games, nil
}

// AddToWishlist はゲーム名で追加する（API仕様がIDでなく名前）。
func (c *Client) AddToWishlist(ctx context.Context, gameName string) (string, error) {
	var out messageResponse
	body := struct {
		Name string `json:"name"`
	}{Name: gameName}
	if err := c.doJSON(ctx, http.MethodPost, "/wishlist", nil, body, &out, "Failed to add game to wishlist"); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) RemoveFromWishlist(ctx context.Context, gameID string) error {
	body := struct {
		GameID string `json:"gameId"`
	}{GameID: gameID}
	return c.doJSON(ctx, http.MethodDelete, "/wishlist", nil, body, nil, "Failed to remove game from wishlist")
}

// WishlistCountForGame は対象ゲームをwishlistに入れているユーザー数。認証不要。
func (c *Client) WishlistCountForGame(ctx context.Context, gameID string) (int64, error) {
	var out wishlistCountResponse
	if err := c.doJSON(ctx, http.MethodGet, "/wishlist/"+gameID+"/count", nil, nil, &out, "Failed to fetch wishlist count"); err != nil {
		return 0, err
	}
	return out.Count, nil
}
