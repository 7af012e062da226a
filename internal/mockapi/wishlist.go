package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gamestore/internal/domain/model"
)

func (s *Server) getWishlist(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	games := []model.Game{}
	for _, id := range s.wishlists[userID] {
		if g, exists := s.games[id]; exists {
			games = append(games, *g)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"games": games})
}

// 追加は名前指定（画面が名前しか持っていないAPI仕様のまま）。
func (s *Server) addToWishlist(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var target *model.Game
	for _, id := range s.gameOrder {
		g := s.games[id]
		if g != nil && g.IsPublished && g.Name == req.Name {
			target = g
			break
		}
	}
	if target == nil {
		return errorJSON(c, http.StatusNotFound, "game not found")
	}

	for _, id := range s.wishlists[userID] {
		if id == target.ID {
			return c.JSON(http.StatusOK, echo.Map{"message": "Game already in wishlist"})
		}
	}
	s.wishlists[userID] = append(s.wishlists[userID], target.ID)

	return c.JSON(http.StatusOK, echo.Map{"message": "Game added to wishlist"})
}

func (s *Server) removeFromWishlist(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		GameID string `json:"gameId"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.wishlists[userID]
	kept := ids[:0]
	found := false
	for _, id := range ids {
		if id == req.GameID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return errorJSON(c, http.StatusNotFound, "game not in wishlist")
	}
	s.wishlists[userID] = kept

	return c.JSON(http.StatusOK, echo.Map{"message": "Game removed from wishlist"})
}

// 対象ゲームをwishlistに入れているユーザー数。認証不要。
func (s *Server) wishlistCount(c echo.Context) error {
	gameID := c.Param("gameId")

	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, ids := range s.wishlists {
		for _, id := range ids {
			if id == gameID {
				count++
				break
			}
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
