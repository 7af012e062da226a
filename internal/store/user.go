package store

import (
	"context"
	"sync"

	"gamestore/internal/api"
	"gamestore/internal/domain/model"
)

type UserAPI interface {
	FetchUser(ctx context.Context) (model.User, error)
	GetGame(ctx context.Context, gameID string) (model.Game, error)
}

// UserStore はプロフィール画面の状態。
// プロフィールはゲームをID列でしか返さないので、詳細は1件ずつ取り足す。
type UserStore struct {
	api UserAPI

	mu    sync.Mutex
	user  *model.User
	games []model.Game
	err   string
}

func NewUserStore(api UserAPI) *UserStore {
	return &UserStore{api: api, games: []model.Game{}}
}

func (s *UserStore) Fetch(ctx context.Context) error {
	u, err := s.api.FetchUser(ctx)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.err = api.ErrorMessage(err)
		return err
	}

	games := make([]model.Game, 0, len(u.Games))
	for _, id := range u.Games {
		g, err := s.api.GetGame(ctx, id)
		if err != nil {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.err = api.ErrorMessage(err)
			return err
		}
		games = append(games, g)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	s.games = games
	s.err = ""
	return nil
}

// Clear はログアウト時などに全部捨てる。
func (s *UserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.games = []model.Game{}
	s.err = ""
}

func (s *UserStore) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *UserStore) Games() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]model.Game, len(s.games))
	copy(games, s.games)
	return games
}

func (s *UserStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
