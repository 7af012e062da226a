package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"gamestore/internal/domain/model"
)

type gameInput struct {
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

// listGames は公開済みだけをフィルタして返す。
func (s *Server) listGames(c echo.Context) error {
	q := c.QueryParams()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Game{}
	for _, id := range s.gameOrder {
		g := s.games[id]
		if g == nil || !g.IsPublished {
			continue
		}
		if !matchesFilter(g, q) {
			continue
		}
		out = append(out, *g)
	}
	return c.JSON(http.StatusOK, out)
}

func matchesFilter(g *model.Game, q map[string][]string) bool {
	if categories := q["category"]; len(categories) > 0 && !intersects(g.Category, categories) {
		return false
	}
	if platform := first(q["platform"]); platform != "" && g.Platform != platform {
		return false
	}
	if v := first(q["maxPrice"]); v != "" {
		if maxPrice, err := strconv.ParseFloat(v, 64); err == nil && g.Price > maxPrice {
			return false
		}
	}
	if search := first(q["search"]); search != "" &&
		!strings.Contains(strings.ToLower(g.Name), strings.ToLower(search)) {
		return false
	}
	if players := q["players"]; len(players) > 0 && !intersects(g.Players, players) {
		return false
	}
	if languages := q["language"]; len(languages) > 0 && !intersects(g.Language, languages) {
		return false
	}
	if v := first(q["rating"]); v != "" {
		if rating, err := strconv.ParseFloat(v, 64); err == nil && g.Rating < rating {
			return false
		}
	}
	return true
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (s *Server) getGame(c echo.Context) error {
	s.mu.Lock()
	g, ok := s.games[c.Param("id")]
	s.mu.Unlock()

	if !ok {
		return errorJSON(c, http.StatusNotFound, "game not found")
	}
	return c.JSON(http.StatusOK, g)
}

func (s *Server) companyGames(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Game{}
	for _, id := range s.gameOrder {
		g := s.games[id]
		if g != nil && g.CompanyID == userID {
			out = append(out, *g)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createGame(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var in gameInput
	if err := c.Bind(&in); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	if in.Name == "" {
		return errorJSON(c, http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return errorJSON(c, http.StatusBadRequest, "invalid price")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u := s.users[userID]; u == nil || u.Role != model.RoleCompany {
		return errorJSON(c, http.StatusForbidden, "only companies can publish games")
	}

	g := &model.Game{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Platform:    in.Platform,
		Players:     in.Players,
		Language:    in.Language,
		Rating:      in.Rating,
		CompanyID:   userID,
	}
	s.games[g.ID] = g
	s.gameOrder = append(s.gameOrder, g.ID)

	return c.JSON(http.StatusCreated, echo.Map{"game": g})
}

// 所有チェック。muを握った状態で呼ぶ。
func (s *Server) ownedGame(c echo.Context, userID string) (*model.Game, error) {
	g, ok := s.games[c.Param("id")]
	if !ok {
		return nil, errorJSON(c, http.StatusNotFound, "game not found")
	}
	if g.CompanyID != userID {
		return nil, errorJSON(c, http.StatusForbidden, "forbidden")
	}
	return g, nil
}

func (s *Server) updateGame(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var in gameInput
	if err := c.Bind(&in); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, errResp := s.ownedGame(c, userID)
	if g == nil {
		return errResp
	}

	g.Name = in.Name
	g.Description = in.Description
	g.Price = in.Price
	g.ImageURL = in.ImageURL
	g.Category = in.Category
	g.Platform = in.Platform
	g.Players = in.Players
	g.Language = in.Language
	g.Rating = in.Rating

	return c.JSON(http.StatusOK, echo.Map{"game": g})
}

func (s *Server) deleteGame(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, errResp := s.ownedGame(c, userID)
	if g == nil {
		return errResp
	}

	delete(s.games, g.ID)
	for i, id := range s.gameOrder {
		if id == g.ID {
			s.gameOrder = append(s.gameOrder[:i], s.gameOrder[i+1:]...)
			break
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "game deleted"})
}

func (s *Server) togglePublish(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, errResp := s.ownedGame(c, userID)
	if g == nil {
		return errResp
	}

	g.IsPublished = !g.IsPublished
	return c.JSON(http.StatusOK, echo.Map{"isPublished": g.IsPublished})
}

func (s *Server) incrementViews(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[c.Param("id")]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "game not found")
	}

	g.Views++
	return c.JSON(http.StatusOK, echo.Map{"views": g.Views})
}
