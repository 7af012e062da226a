package model

// カートの1明細。gameIdはカート内で一意。
// priceは単価（0は無料ゲーム）。
type CartLineItem struct {
	GameID   string  `json:"gameId"`
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// CartSnapshot はサーバが返すカートの正。
// totalPriceはサーバ計算（割引等があるためクライアントでは再計算しない）。
type CartSnapshot struct {
	Items      []CartLineItem `json:"items"`
	TotalPrice float64        `json:"totalPrice"`
}

// Cart はクライアント側で保持するカート状態。
// TotalItemsは数量合計（追加成功時のみ楽観インクリメント）。
type Cart struct {
	Items      []CartLineItem `json:"items"`
	TotalItems int64          `json:"totalItems"`
	TotalPrice float64        `json:"totalPrice"`
}
