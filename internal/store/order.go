package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"gamestore/internal/api"
	"gamestore/internal/domain/model"
)

// Submit中に再度Submitされたときに返す。2本目のリクエストは出さない。
var ErrSubmissionInFlight = errors.New("order submission already in flight")

// Phase はチェックアウトの状態機械。
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// CheckoutAPI はOrderStoreが使うリモート呼び出し。
type CheckoutAPI interface {
	CreateOrder(ctx context.Context, form model.OrderForm, idempotencyKey string) (model.Order, error)
}

// OrderStore は支払い/配送フォームと注文送信の状態機械。
// Submitは同時に1本まで。成功でフォームを空に戻し、失敗ならフォームは手付かずで残す。
type OrderStore struct {
	api CheckoutAPI

	mu         sync.Mutex
	form       model.OrderForm
	order      *model.Order
	submitting bool
	err        string
}

func NewOrderStore(api CheckoutAPI) *OrderStore {
	return &OrderStore{api: api}
}

// UpdateField はフォーム1項目の更新。どの状態でも受け付ける。
// 未知のフィールド名は無視する。
func (s *OrderStore) UpdateField(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case "cardName":
		s.form.CardName = value
	case "cardNumber":
		s.form.CardNumber = value
	case "cardCVC":
		s.form.CardCVC = value
	case "cardExpiry":
		s.form.CardExpiry = value
	case "address":
		s.form.Address = value
	case "country":
		s.form.Country = value
	case "province":
		s.form.Province = value
	case "city":
		s.form.City = value
	case "postalCode":
		s.form.PostalCode = value
	}
}

// Submit は注文を1回だけ送る。
// すでにSubmit中ならErrSubmissionInFlightを返してリモート呼び出しはしない。
func (s *OrderStore) Submit(ctx context.Context) (model.Order, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return model.Order{}, ErrSubmissionInFlight
	}
	s.submitting = true
	s.err = ""
	form := s.form
	s.mu.Unlock()

	//Submitごとに新しいキー。再送されても注文は二重にならない
	key := uuid.NewString()
	order, err := s.api.CreateOrder(ctx, form, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		//フォームはユーザーが直して再送できるよう残す
		s.err = api.ErrorMessage(err)
		return model.Order{}, err
	}

	s.order = &order
	s.form = model.OrderForm{}
	return order, nil
}

// ClearError はエラーだけ消す。フォームにも注文にも触らない。
func (s *OrderStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// ClearOrder は保持している注文を捨てる。チェックアウト再入時に呼んで
// 前回の成否を持ち越さない。
func (s *OrderStore) ClearOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
}

// ClearForm はフォームを初期形に戻す。
func (s *OrderStore) ClearForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = model.OrderForm{}
}

// Form は現在のフォームのコピー。
func (s *OrderStore) Form() model.OrderForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Order は直近の成功注文。無ければfalse。
func (s *OrderStore) Order() (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		return model.Order{}, false
	}
	return *s.order, true
}

func (s *OrderStore) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

func (s *OrderStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Phase は現在の状態。Submitting > Succeeded > Failed > Idle の順で判定する。
func (s *OrderStore) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.submitting:
		return PhaseSubmitting
	case s.order != nil:
		return PhaseSucceeded
	case s.err != "":
		return PhaseFailed
	default:
		return PhaseIdle
	}
}
