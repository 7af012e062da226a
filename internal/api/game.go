package api

import (
	"context"
	"net/http"
	"net/url"

	"gamestore/internal/domain/model"
)

// GameInput は作成/更新の入力。画像はURL渡し（アップロードは対象外）。
type GameInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Category    []string `json:"category"`
	Platform    string   `json:"platform"`
	Players     []string `json:"players"`
	Language    []string `json:"language"`
	Rating      float64  `json:"rating"`
}

type gameEnvelope struct {
	Game model.Game `json:"game"`
}

type publishResponse struct {
	IsPublished bool `json:"isPublished"`
}

type viewsResponse struct {
	Views int64 `json:"views"`
}

// ListGames は公開カタログ。queryはフィルタ（internal/storeのFilterStateが組む）。
func (c *Client) ListGames(ctx context.Context, query url.Values) ([]model.Game, error) {
	path := "/games"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var games []model.Game
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &games, "Failed to fetch games"); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) GetGame(ctx context.Context, gameID string) (model.Game, error) {
	var g model.Game
	if err := c.doJSON(ctx, http.MethodGet, "/games/"+gameID, nil, nil, &g, "Failed to fetch game"); err != nil {
		return model.Game{}, err
	}
	return g, nil
}

// FetchCompanyGames は自社（empresaロール）のゲーム一覧。
func (c *Client) FetchCompanyGames(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := c.doJSON(ctx, http.MethodGet, "/games/company", nil, nil, &games, "Failed to fetch company games"); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) CreateGame(ctx context.Context, in GameInput) (model.Game, error) {
	var env gameEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/games", nil, in, &env, "Error creating the game"); err != nil {
		return model.Game{}, err
	}
	return env.Game, nil
}

func (c *Client) UpdateGame(ctx context.Context, gameID string, in GameInput) (model.Game, error) {
	var env gameEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/games/"+gameID, nil, in, &env, "Error updating the game"); err != nil {
		return model.Game{}, err
	}
	return env.Game, nil
}

func (c *Client) DeleteGame(ctx context.Context, gameID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/games/"+gameID, nil, nil, nil, "Failed to delete game")
}

// TogglePublish は公開フラグを反転して新しい値を返す。
func (c *Client) TogglePublish(ctx context.Context, gameID string) (bool, error) {
	var out publishResponse
	if err := c.doJSON(ctx, http.MethodPut, "/games/publish/"+gameID, nil, struct{}{}, &out, "Error toggling publish status"); err != nil {
		return false, err
	}
	return out.IsPublished, nil
}

// IncrementViews は閲覧数+1。新しい合計を返す。
func (c *Client) IncrementViews(ctx context.Context, gameID string) (int64, error) {
	var out viewsResponse
	if err := c.doJSON(ctx, http.MethodPut, "/games/"+gameID+"/views", nil, struct{}{}, &out, "Error incrementing game views"); err != nil {
		return 0, err
	}
	return out.Views, nil
}
