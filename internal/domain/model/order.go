package model

import "time"

// OrderForm はチェックアウト画面の入力。
// 各フィールドは自由入力の文字列（クライアント側では整形のみで検証しない）。
type OrderForm struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	CardCVC    string `json:"cardCVC"`
	CardExpiry string `json:"cardExpiry"`
	Address    string `json:"address"`
	Country    string `json:"country"`
	Province   string `json:"province"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Order はサーバが返す注文確定情報。
type Order struct {
	ID         string         `json:"_id"`
	UserID     string         `json:"userId"`
	Items      []CartLineItem `json:"items"`
	TotalPrice float64        `json:"totalPrice"`
	CreatedAt  time.Time      `json:"createdAt"`
}
