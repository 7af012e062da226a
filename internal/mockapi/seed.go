package mockapi

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gamestore/internal/domain/model"
)

// Seed は開発用の初期データ。パブリッシャー1社と公開ゲームを入れる。
// ログイン: demo@example.com / password（一般ユーザー）
func (s *Server) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), 12)
	if err != nil {
		panic(err)
	}

	company := &user{
		User: model.User{
			ID:    uuid.NewString(),
			Name:  "Pixel Forge Studios",
			Email: "studio@example.com",
			Role:  model.RoleCompany,
			Games: []string{},
		},
		passwordHash: hash,
	}
	buyer := &user{
		User: model.User{
			ID:    uuid.NewString(),
			Name:  "Demo User",
			Email: "demo@example.com",
			Role:  model.RoleUser,
			Games: []string{},
		},
		passwordHash: hash,
	}
	s.users[company.ID] = company
	s.users[buyer.ID] = buyer
	s.byEmail[company.Email] = company.ID
	s.byEmail[buyer.Email] = buyer.ID

	seedGames := []model.Game{
		{
			Name:        "Nebula Drift",
			Description: "Open-world space racer",
			Price:       29.99,
			Category:    []string{"racing", "arcade"},
			Platform:    "pc",
			Players:     []string{"single", "multi"},
			Language:    []string{"en", "es"},
			Rating:      4.5,
		},
		{
			Name:        "Grimwood Tactics",
			Description: "Turn-based fantasy strategy",
			Price:       19.99,
			Category:    []string{"strategy"},
			Platform:    "pc",
			Players:     []string{"single"},
			Language:    []string{"en"},
			Rating:      4.1,
		},
		{
			Name:        "Puzzle Tides",
			Description: "Relaxing match puzzle",
			Price:       0,
			Category:    []string{"puzzle"},
			Platform:    "mobile",
			Players:     []string{"single"},
			Language:    []string{"en", "es", "ja"},
			Rating:      3.8,
		},
	}
	for i := range seedGames {
		g := seedGames[i]
		g.ID = uuid.NewString()
		g.CompanyID = company.ID
		g.IsPublished = true
		s.games[g.ID] = &g
		s.gameOrder = append(s.gameOrder, g.ID)
	}
}
