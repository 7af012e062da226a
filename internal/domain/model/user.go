package model

type Role string

const (
	// 一般ユーザー（購入側）
	RoleUser Role = "user"
	// パブリッシャー。カートは持たない
	RoleCompany Role = "empresa"
)

type User struct {
	ID    string   `json:"_id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  Role     `json:"role"`
	Logo  string   `json:"logo,omitempty"`
	Games []string `json:"games"`
}
