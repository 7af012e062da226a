package mockapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"gamestore/internal/domain/model"
)

const ctxUserIDKey = "user_id"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return errorJSON(c, http.StatusBadRequest, "name, email and password are required")
	}

	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleCompany {
		return errorJSON(c, http.StatusBadRequest, "invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	s.mu.Lock()
	if _, exists := s.byEmail[req.Email]; exists {
		s.mu.Unlock()
		return errorJSON(c, http.StatusConflict, "email already registered")
	}
	u := &user{
		User: model.User{
			ID:    uuid.NewString(),
			Name:  req.Name,
			Email: req.Email,
			Role:  role,
			Games: []string{},
		},
		passwordHash: hash,
	}
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	s.mu.Unlock()

	token, err := s.issueToken(u.User)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: u.User})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	id, ok := s.byEmail[req.Email]
	var u *user
	if ok {
		u = s.users[id]
	}
	s.mu.Unlock()

	if u == nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)); err != nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid email or password")
	}

	token, err := s.issueToken(u.User)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: u.User})
}

func (s *Server) resetPasswordRequest(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	id, ok := s.byEmail[req.Email]
	var token string
	if ok {
		token = uuid.NewString()
		s.resetTokens[token] = id
	}
	s.mu.Unlock()

	if !ok {
		//存在しないメールでも成功で返す（存在の露出を避ける）
		return c.JSON(http.StatusOK, echo.Map{"message": "Password reset email sent"})
	}
	//モックなのでトークンをそのまま返してしまう（メールは無い）
	return c.JSON(http.StatusOK, echo.Map{"message": "Password reset email sent", "resetToken": token})
}

func (s *Server) resetPassword(c echo.Context) error {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	if req.NewPassword == "" {
		return errorJSON(c, http.StatusBadRequest, "newPassword is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resetTokens[req.Token]
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid or expired token")
	}
	delete(s.resetTokens, req.Token)
	s.users[id].passwordHash = hash

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated"})
}

func (s *Server) issueToken(u model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// bearerAuth用のJWT検証ミドルウェア。
func (s *Server) authJWT(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized")
		}

		//Bearer形式か確認してtokenを抜く
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized")
		}
		rawToken := strings.TrimSpace(parts[1])
		if rawToken == "" {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized")
		}

		token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		})
		if err != nil || token == nil || !token.Valid {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized")
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized")
		}

		s.mu.Lock()
		_, exists := s.users[sub]
		s.mu.Unlock()
		if !exists {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized")
		}

		c.Set(ctxUserIDKey, sub)
		return next(c)
	}
}

func currentUserID(c echo.Context) (string, bool) {
	id, ok := c.Get(ctxUserIDKey).(string)
	return id, ok && id != ""
}
