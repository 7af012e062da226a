package store

import (
	"context"
	"net/url"
	"sync"

	"gamestore/internal/api"
	"gamestore/internal/domain/model"
)

type GameAPI interface {
	ListGames(ctx context.Context, query url.Values) ([]model.Game, error)
	GetGame(ctx context.Context, gameID string) (model.Game, error)
	FetchCompanyGames(ctx context.Context) ([]model.Game, error)
	CreateGame(ctx context.Context, in api.GameInput) (model.Game, error)
	UpdateGame(ctx context.Context, gameID string, in api.GameInput) (model.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	TogglePublish(ctx context.Context, gameID string) (bool, error)
	IncrementViews(ctx context.Context, gameID string) (int64, error)
}

// GameStore はカタログとパブリッシャー（empresa）側のゲーム管理状態。
type GameStore struct {
	api GameAPI

	mu           sync.Mutex
	catalog      []model.Game
	companyGames []model.Game
	game         *model.Game
	successMsg   string
	err          string
}

func NewGameStore(api GameAPI) *GameStore {
	return &GameStore{
		api:          api,
		catalog:      []model.Game{},
		companyGames: []model.Game{},
	}
}

// List は公開カタログをフィルタ付きで取り直す。
func (s *GameStore) List(ctx context.Context, filter *FilterState) error {
	var query url.Values
	if filter != nil {
		query = filter.Query()
	}
	games, err := s.api.ListGames(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}
	if games == nil {
		games = []model.Game{}
	}
	s.catalog = games
	s.err = ""
	return nil
}

// Get は1件取得して現在のゲームとして保持する。
func (s *GameStore) Get(ctx context.Context, gameID string) (model.Game, error) {
	g, err := s.api.GetGame(ctx, gameID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return model.Game{}, err
	}
	s.game = &g
	s.err = ""
	return g, nil
}

func (s *GameStore) FetchCompanyGames(ctx context.Context) error {
	games, err := s.api.FetchCompanyGames(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}
	if games == nil {
		games = []model.Game{}
	}
	s.companyGames = games
	s.err = ""
	return nil
}

func (s *GameStore) Create(ctx context.Context, in api.GameInput) (model.Game, error) {
	g, err := s.api.CreateGame(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return model.Game{}, err
	}
	s.game = &g
	s.successMsg = "Game created successfully."
	s.err = ""
	return g, nil
}

func (s *GameStore) Update(ctx context.Context, gameID string, in api.GameInput) (model.Game, error) {
	g, err := s.api.UpdateGame(ctx, gameID, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return model.Game{}, err
	}
	s.game = &g
	s.successMsg = "Game updated successfully."
	s.err = ""

	for i := range s.companyGames {
		if s.companyGames[i].ID == gameID {
			s.companyGames[i] = g
			break
		}
	}
	return g, nil
}

// Delete は成功したら自社一覧からも除く。
func (s *GameStore) Delete(ctx context.Context, gameID string) error {
	err := s.api.DeleteGame(ctx, gameID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}

	kept := s.companyGames[:0]
	for _, g := range s.companyGames {
		if g.ID != gameID {
			kept = append(kept, g)
		}
	}
	s.companyGames = kept
	s.err = ""
	return nil
}

// TogglePublish は公開フラグを反転して自社一覧の該当行に反映する。
func (s *GameStore) TogglePublish(ctx context.Context, gameID string) error {
	isPublished, err := s.api.TogglePublish(ctx, gameID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}

	for i := range s.companyGames {
		if s.companyGames[i].ID == gameID {
			s.companyGames[i].IsPublished = isPublished
			break
		}
	}
	s.err = ""
	return nil
}

// IncrementViews は閲覧数を進め、自社一覧と現在のゲームの両方に反映する。
func (s *GameStore) IncrementViews(ctx context.Context, gameID string) error {
	views, err := s.api.IncrementViews(ctx, gameID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}

	for i := range s.companyGames {
		if s.companyGames[i].ID == gameID {
			s.companyGames[i].Views = views
			break
		}
	}
	if s.game != nil && s.game.ID == gameID {
		s.game.Views = views
	}
	s.err = ""
	return nil
}

func (s *GameStore) Catalog() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]model.Game, len(s.catalog))
	copy(games, s.catalog)
	return games
}

func (s *GameStore) CompanyGames() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]model.Game, len(s.companyGames))
	copy(games, s.companyGames)
	return games
}

func (s *GameStore) Game() (model.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return model.Game{}, false
	}
	return *s.game, true
}

func (s *GameStore) SuccessMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.successMsg
}

func (s *GameStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *GameStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *GameStore) ClearSuccessMessage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successMsg = ""
}
