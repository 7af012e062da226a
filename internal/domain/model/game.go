package model

// ストアのゲーム。_idはAPI側の採番。
type Game struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Category    []string `json:"category"`
	Platform    string   `json:"platform"`
	Players     []string `json:"players"`
	Language    []string `json:"language"`
	Rating      float64  `json:"rating"`
	Views       int64    `json:"views"`
	IsPublished bool     `json:"isPublished"`
	CompanyID   string   `json:"companyId"`
}
