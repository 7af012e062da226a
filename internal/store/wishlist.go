package store

import (
	"context"
	"sync"

	"gamestore/internal/api"
	"gamestore/internal/domain/model"
)

type WishlistAPI interface {
	GetWishlist(ctx context.Context) ([]model.Game, error)
	AddToWishlist(ctx context.Context, gameName string) (string, error)
	RemoveFromWishlist(ctx context.Context, gameID string) error
	WishlistCountForGame(ctx context.Context, gameID string) (int64, error)
}

// WishlistStore はウィッシュリストのクライアント状態。
// 削除だけは再フェッチせずローカルから除く（元APIが削除結果を返さないため）。
type WishlistStore struct {
	api WishlistAPI

	mu      sync.Mutex
	games   []model.Game
	counts  map[string]int64
	message string
	err     string
}

func NewWishlistStore(api WishlistAPI) *WishlistStore {
	return &WishlistStore{
		api:    api,
		games:  []model.Game{},
		counts: map[string]int64{},
	}
}

func (s *WishlistStore) Fetch(ctx context.Context) error {
	games, err := s.api.GetWishlist(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}
	if games == nil {
		games = []model.Game{}
	}
	s.games = games
	s.err = ""
	return nil
}

// Add は名前指定で追加。一覧はサーバ側が変わるだけなので次のFetchで反映。
func (s *WishlistStore) Add(ctx context.Context, gameName string) error {
	msg, err := s.api.AddToWishlist(ctx, gameName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}
	s.message = msg
	s.err = ""
	return nil
}

// Remove は成功したらローカル一覧から対象IDを抜く。
func (s *WishlistStore) Remove(ctx context.Context, gameID string) error {
	err := s.api.RemoveFromWishlist(ctx, gameID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}

	kept := s.games[:0]
	for _, g := range s.games {
		if g.ID != gameID {
			kept = append(kept, g)
		}
	}
	s.games = kept
	s.err = ""
	return nil
}

// FetchCount は対象ゲームを入れているユーザー数を取ってキャッシュする。
func (s *WishlistStore) FetchCount(ctx context.Context, gameID string) (int64, error) {
	count, err := s.api.WishlistCountForGame(ctx, gameID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return 0, err
	}
	s.counts[gameID] = count
	return count, nil
}

func (s *WishlistStore) Games() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]model.Game, len(s.games))
	copy(games, s.games)
	return games
}

func (s *WishlistStore) Count(gameID string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counts[gameID]
	return c, ok
}

func (s *WishlistStore) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *WishlistStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *WishlistStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}
