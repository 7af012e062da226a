package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"gamestore/internal/api"
	"gamestore/internal/domain/model"
)

// AuthAPI はセッションが使う認証まわりの呼び出し。実装はapi.Client。
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

// Session はBearerトークンとログインユーザーをメモリに持つ。
// api.TokenProviderを実装し、Cart/Order側はこの資格情報を読むだけで書き換えない。
type Session struct {
	api AuthAPI

	mu            sync.RWMutex
	token         string
	user          model.User
	authenticated bool
	err           string
}

func New(api AuthAPI) *Session {
	return &Session{api: api}
}

// Token はapi.TokenProviderの実装。未ログインなら空文字。
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	out, err := s.api.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		s.authenticated = false
		return err
	}

	s.token = out.Token
	s.user = out.User
	s.authenticated = true
	s.err = ""
	return nil
}

// Register は登録のみでログイン状態にはしない（元の画面仕様）。
func (s *Session) Register(ctx context.Context, req api.RegisterRequest) (model.User, error) {
	out, err := s.api.Register(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return model.User{}, err
	}

	s.user = out.User
	s.authenticated = false
	s.err = ""
	return out.User, nil
}

func (s *Session) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	msg, err := s.api.RequestPasswordReset(ctx, email)
	if err != nil {
		s.mu.Lock()
		s.err = api.ErrorMessage(err)
		s.mu.Unlock()
		return "", err
	}
	return msg, nil
}

func (s *Session) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	msg, err := s.api.ResetPassword(ctx, token, newPassword)
	if err != nil {
		s.mu.Lock()
		s.err = api.ErrorMessage(err)
		s.mu.Unlock()
		return "", err
	}
	return msg, nil
}

// Logout はトークンとユーザーを捨てるだけ。サーバ呼び出しはしない。
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = model.User{}
	s.authenticated = false
	s.err = ""
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Session) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated && s.user.ID == "" {
		return model.User{}, false
	}
	return s.user, true
}

func (s *Session) Role() model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Role
}

func (s *Session) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Valid はトークンのexpクレームだけ見て生死を判定する。
// クライアントは署名鍵を持たないので検証はしない（するのはサーバ）。
func (s *Session) Valid(now time.Time) bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	//expが無いトークンは不正扱い
	return claims.VerifyExpiresAt(now.Unix(), true)
}
