package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 自分のプロフィール。所持ゲームはID列で返す（詳細はGET /games/:idで取り足す）。
func (s *Server) getUser(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	s.mu.Lock()
	u := s.users[userID]
	out := u.User
	out.Games = append([]string{}, u.Games...)
	s.mu.Unlock()

	return c.JSON(http.StatusOK, out)
}
