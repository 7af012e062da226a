package store

import (
	"context"
	"sync"

	"gamestore/internal/api"
	"gamestore/internal/domain/model"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// CartAPI はCartStoreが使うリモート呼び出し。実装はapi.Client。
type CartAPI interface {
	FetchCart(ctx context.Context) (model.CartSnapshot, error)
	AddCartItem(ctx context.Context, gameID string, quantity int64) (model.CartSnapshot, error)
	RemoveCartItem(ctx context.Context, gameID string) (model.CartSnapshot, error)
	IncreaseCartQuantity(ctx context.Context, gameID string) (model.CartSnapshot, error)
	DecreaseCartQuantity(ctx context.Context, gameID string) (model.CartSnapshot, error)
	ClearCart(ctx context.Context) error
}

// CartStore はクライアント側のカート正本。
// 成功応答のたびにitems/totalPriceをサーバのスナップショットで丸ごと置き換える。
// 更新系はopMuで直列化する（連打してもlast-write-winsの曖昧さを残さない）。
type CartStore struct {
	api CartAPI

	opMu sync.Mutex // リモート更新の直列化
	mu   sync.Mutex // 状態の保護

	items      []model.CartLineItem
	totalItems int64
	totalPrice float64
	status     Status
	err        string
}

func NewCartStore(api CartAPI) *CartStore {
	return &CartStore{
		api:    api,
		items:  []model.CartLineItem{},
		status: StatusIdle,
	}
}

// Fetch はカートを取り直す。失敗時は手元の状態を保持したままエラーだけ記録する。
func (s *CartStore) Fetch(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.status = StatusLoading
	s.err = ""
	s.mu.Unlock()

	snap, err := s.api.FetchCart(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusFailed
		s.err = api.ErrorMessage(err)
		return err
	}

	s.applySnapshot(snap)
	s.status = StatusSucceeded
	return nil
}

// AddItem はquantity個の追加。
// 成功時、totalItemsはサーバ返却から再計算せずquantityぶん楽観インクリメントする。
// バッジ表示を即時に合わせるための意図的な非対称で、次のFetchや数量変更で真値に戻る。
func (s *CartStore) AddItem(ctx context.Context, gameID string, quantity int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap, err := s.api.AddCartItem(ctx, gameID, quantity)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}

	s.items = snap.Items
	s.totalPrice = snap.TotalPrice
	s.totalItems += quantity
	s.err = ""
	return nil
}

// IncreaseQuantity は対象明細を+1。totalItemsは真値で再計算。
func (s *CartStore) IncreaseQuantity(ctx context.Context, gameID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap, err := s.api.IncreaseCartQuantity(ctx, gameID)
	return s.applyMutation(snap, err)
}

// DecreaseQuantity は対象明細を-1。
// 1を下回るときに明細が消えるかはサーバのポリシーで、返ってきた明細を信じる。
func (s *CartStore) DecreaseQuantity(ctx context.Context, gameID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap, err := s.api.DecreaseCartQuantity(ctx, gameID)
	return s.applyMutation(snap, err)
}

// RemoveItem は数量にかかわらず明細ごと削除。
func (s *CartStore) RemoveItem(ctx context.Context, gameID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap, err := s.api.RemoveCartItem(ctx, gameID)
	return s.applyMutation(snap, err)
}

// Clear はカートを空にする。ACKが返ればフェッチを挟まず即ローカルを空にする。
func (s *CartStore) Clear(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	err := s.api.ClearCart(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}

	s.items = []model.CartLineItem{}
	s.totalItems = 0
	s.totalPrice = 0
	s.err = ""
	return nil
}

// ResetError はエラー表示を消すだけ。カート本体には触らない。
func (s *CartStore) ResetError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Cart は現在の状態のコピーを返す。
func (s *CartStore) Cart() model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartLineItem, len(s.items))
	copy(items, s.items)
	return model.Cart{
		Items:      items,
		TotalItems: s.totalItems,
		TotalPrice: s.totalPrice,
	}
}

func (s *CartStore) TotalItems() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

func (s *CartStore) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice
}

func (s *CartStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *CartStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// applyMutation はRemove/Increase/Decrease共通の反映。
// 失敗なら何も適用せずメッセージだけ残す。
func (s *CartStore) applyMutation(snap model.CartSnapshot, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.ErrorMessage(err)
		return err
	}
	s.applySnapshot(snap)
	return nil
}

// applySnapshot は呼び出し側がmuを握っている前提。
func (s *CartStore) applySnapshot(snap model.CartSnapshot) {
	items := snap.Items
	if items == nil {
		items = []model.CartLineItem{}
	}
	s.items = items
	s.totalItems = sumQuantities(items)
	s.totalPrice = snap.TotalPrice
	s.err = ""
}

func sumQuantities(items []model.CartLineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
