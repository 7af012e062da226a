package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gamestore/internal/api"
	"gamestore/internal/domain/model"
	"gamestore/internal/store"
)

// =====================
// CartAPI mock
// =====================

type CartAPIMock struct{ mock.Mock }

func (m *CartAPIMock) FetchCart(ctx context.Context) (model.CartSnapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(model.CartSnapshot)
	return snap, args.Error(1)
}

func (m *CartAPIMock) AddCartItem(ctx context.Context, gameID string, quantity int64) (model.CartSnapshot, error) {
	args := m.Called(ctx, gameID, quantity)
	snap, _ := args.Get(0).(model.CartSnapshot)
	return snap, args.Error(1)
}

func (m *CartAPIMock) RemoveCartItem(ctx context.Context, gameID string) (model.CartSnapshot, error) {
	args := m.Called(ctx, gameID)
	snap, _ := args.Get(0).(model.CartSnapshot)
	return snap, args.Error(1)
}

func (m *CartAPIMock) IncreaseCartQuantity(ctx context.Context, gameID string) (model.CartSnapshot, error) {
	args := m.Called(ctx, gameID)
	snap, _ := args.Get(0).(model.CartSnapshot)
	return snap, args.Error(1)
}

func (m *CartAPIMock) DecreaseCartQuantity(ctx context.Context, gameID string) (model.CartSnapshot, error) {
	args := m.Called(ctx, gameID)
	snap, _ := args.Get(0).(model.CartSnapshot)
	return snap, args.Error(1)
}

func (m *CartAPIMock) ClearCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// =====================
// Fetch
// =====================

func TestCartStore_Fetch_ReplacesStateFromSnapshot(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	snap := model.CartSnapshot{
		Items: []model.CartLineItem{
			{GameID: "g1", Name: "Nebula Drift", Price: 10, Quantity: 2},
			{GameID: "g2", Name: "Puzzle Tides", Price: 0, Quantity: 1},
		},
		TotalPrice: 20,
	}
	apiMock.On("FetchCart", mock.Anything).Return(snap, nil)

	err := s.Fetch(ctx)
	assert.NoError(t, err)

	cart := s.Cart()
	assert.Equal(t, int64(3), cart.TotalItems)
	assert.Equal(t, float64(20), cart.TotalPrice)
	assert.Equal(t, store.StatusSucceeded, s.Status())
	assert.Empty(t, s.ErrorMessage())

	apiMock.AssertExpectations(t)
}

// 同じスナップショットを2回取っても状態は同一
func TestCartStore_Fetch_Idempotent(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	snap := model.CartSnapshot{
		Items:      []model.CartLineItem{{GameID: "g1", Price: 5, Quantity: 4}},
		TotalPrice: 20,
	}
	apiMock.On("FetchCart", mock.Anything).Return(snap, nil).Twice()

	assert.NoError(t, s.Fetch(ctx))
	first := s.Cart()

	assert.NoError(t, s.Fetch(ctx))
	second := s.Cart()

	assert.Equal(t, first, second)
	apiMock.AssertExpectations(t)
}

// 取得失敗は手元の状態を保持したままエラーだけ記録する
func TestCartStore_Fetch_FailureKeepsPriorState(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	snap := model.CartSnapshot{
		Items:      []model.CartLineItem{{GameID: "g1", Price: 10, Quantity: 2}},
		TotalPrice: 20,
	}
	apiMock.On("FetchCart", mock.Anything).Return(snap, nil).Once()
	apiMock.On("FetchCart", mock.Anything).Return(model.CartSnapshot{}, api.NewAPIError(500, "db error")).Once()

	assert.NoError(t, s.Fetch(ctx))
	assert.Error(t, s.Fetch(ctx))

	cart := s.Cart()
	assert.Equal(t, int64(2), cart.TotalItems)
	assert.Equal(t, float64(20), cart.TotalPrice)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, store.StatusFailed, s.Status())
	assert.Equal(t, "db error", s.ErrorMessage())

	apiMock.AssertExpectations(t)
}

// =====================
// AddItem（楽観インクリメント）
// =====================

// totalItemsは返却明細の合計ではなく、追加した数量ぶんだけ増える
func TestCartStore_AddItem_OptimisticIncrement(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	//まず3個入りの状態にする
	apiMock.On("FetchCart", mock.Anything).Return(model.CartSnapshot{
		Items:      []model.CartLineItem{{GameID: "g1", Price: 10, Quantity: 3}},
		TotalPrice: 30,
	}, nil).Once()
	assert.NoError(t, s.Fetch(ctx))
	assert.Equal(t, int64(3), s.TotalItems())

	//サーバ返却の合計（7）とは食い違うスナップショットでも+2しかされない
	apiMock.On("AddCartItem", mock.Anything, "g2", int64(2)).Return(model.CartSnapshot{
		Items: []model.CartLineItem{
			{GameID: "g1", Price: 10, Quantity: 3},
			{GameID: "g2", Price: 5, Quantity: 4},
		},
		TotalPrice: 50,
	}, nil).Once()

	assert.NoError(t, s.AddItem(ctx, "g2", 2))
	assert.Equal(t, int64(5), s.TotalItems())
	assert.Equal(t, float64(50), s.TotalPrice())

	apiMock.AssertExpectations(t)
}

// 楽観インクリメントのズレは次のFetchで真値に戻る
func TestCartStore_AddItem_DriftResyncedByFetch(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	snap := model.CartSnapshot{
		Items:      []model.CartLineItem{{GameID: "g1", Price: 10, Quantity: 4}},
		TotalPrice: 40,
	}
	apiMock.On("AddCartItem", mock.Anything, "g1", int64(2)).Return(snap, nil).Once()
	apiMock.On("FetchCart", mock.Anything).Return(snap, nil).Once()

	assert.NoError(t, s.AddItem(ctx, "g1", 2))
	assert.Equal(t, int64(2), s.TotalItems()) // 0+2の楽観値

	assert.NoError(t, s.Fetch(ctx))
	assert.Equal(t, int64(4), s.TotalItems()) // 真値

	apiMock.AssertExpectations(t)
}

func TestCartStore_AddItem_FailureLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	apiMock.On("AddCartItem", mock.Anything, "g1", int64(1)).
		Return(model.CartSnapshot{}, api.NewAPIError(400, "game not available")).Once()

	assert.Error(t, s.AddItem(ctx, "g1", 1))
	assert.Equal(t, int64(0), s.TotalItems())
	assert.Empty(t, s.Cart().Items)
	assert.Equal(t, "game not available", s.ErrorMessage())

	apiMock.AssertExpectations(t)
}

// =====================
// Increase / Decrease / Remove
// =====================

// 数量変更後のtotalItemsは常に明細の合計と一致する
func TestCartStore_QuantityOps_TotalItemsInvariant(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	apiMock.On("IncreaseCartQuantity", mock.Anything, "g1").Return(model.CartSnapshot{
		Items:      []model.CartLineItem{{GameID: "g1", Price: 10, Quantity: 3}},
		TotalPrice: 30,
	}, nil).Once()
	apiMock.On("DecreaseCartQuantity", mock.Anything, "g1").Return(model.CartSnapshot{
		Items:      []model.CartLineItem{{GameID: "g1", Price: 10, Quantity: 2}},
		TotalPrice: 20,
	}, nil).Once()

	assert.NoError(t, s.IncreaseQuantity(ctx, "g1"))
	assert.Equal(t, int64(3), s.TotalItems())

	assert.NoError(t, s.DecreaseQuantity(ctx, "g1"))
	assert.Equal(t, int64(2), s.TotalItems())

	apiMock.AssertExpectations(t)
}

// 数量1でのdecreaseはサーバが明細を消すかもしれない。返却をそのまま信じる
func TestCartStore_Decrease_TrustsServerRemoval(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	apiMock.On("DecreaseCartQuantity", mock.Anything, "g1").
		Return(model.CartSnapshot{Items: []model.CartLineItem{}, TotalPrice: 0}, nil).Once()

	assert.NoError(t, s.DecreaseQuantity(ctx, "g1"))
	assert.Empty(t, s.Cart().Items)
	assert.Equal(t, int64(0), s.TotalItems())

	apiMock.AssertExpectations(t)
}

// 追加してから削除する一連の流れ
func TestCartStore_AddThenRemove(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	apiMock.On("AddCartItem", mock.Anything, "g1", int64(2)).Return(model.CartSnapshot{
		Items:      []model.CartLineItem{{GameID: "g1", Price: 10, Quantity: 2}},
		TotalPrice: 20,
	}, nil).Once()
	apiMock.On("RemoveCartItem", mock.Anything, "g1").
		Return(model.CartSnapshot{Items: []model.CartLineItem{}, TotalPrice: 0}, nil).Once()

	assert.NoError(t, s.AddItem(ctx, "g1", 2))
	assert.Equal(t, int64(2), s.TotalItems())
	assert.Equal(t, float64(20), s.TotalPrice())

	assert.NoError(t, s.RemoveItem(ctx, "g1"))
	assert.Equal(t, int64(0), s.TotalItems())
	assert.Equal(t, float64(0), s.TotalPrice())

	apiMock.AssertExpectations(t)
}

func TestCartStore_Mutation_FailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	apiMock.On("FetchCart", mock.Anything).Return(model.CartSnapshot{
		Items:      []model.CartLineItem{{GameID: "g1", Price: 10, Quantity: 2}},
		TotalPrice: 20,
	}, nil).Once()
	assert.NoError(t, s.Fetch(ctx))

	apiMock.On("RemoveCartItem", mock.Anything, "g1").
		Return(model.CartSnapshot{}, api.NewAPIError(404, "item not in cart")).Once()

	assert.Error(t, s.RemoveItem(ctx, "g1"))

	cart := s.Cart()
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.TotalItems)
	assert.Equal(t, float64(20), cart.TotalPrice)
	assert.Equal(t, "item not in cart", s.ErrorMessage())

	apiMock.AssertExpectations(t)
}

// =====================
// Clear
// =====================

// ACKが返ったら追いフェッチなしで即空にする
func TestCartStore_Clear_ResetsWithoutRefetch(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	apiMock.On("FetchCart", mock.Anything).Return(model.CartSnapshot{
		Items: []model.CartLineItem{
			{GameID: "g1", Price: 15, Quantity: 1},
			{GameID: "g2", Price: 15, Quantity: 1},
			{GameID: "g3", Price: 15, Quantity: 1},
		},
		TotalPrice: 45,
	}, nil).Once()
	assert.NoError(t, s.Fetch(ctx))

	apiMock.On("ClearCart", mock.Anything).Return(nil).Once()

	assert.NoError(t, s.Clear(ctx))

	cart := s.Cart()
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(0), cart.TotalItems)
	assert.Equal(t, float64(0), cart.TotalPrice)

	//クリア後にFetchCartが余計に呼ばれていないこと
	apiMock.AssertNumberOfCalls(t, "FetchCart", 1)
	apiMock.AssertExpectations(t)
}

func TestCartStore_Clear_FailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	apiMock.On("FetchCart", mock.Anything).Return(model.CartSnapshot{
		Items:      []model.CartLineItem{{GameID: "g1", Price: 10, Quantity: 2}},
		TotalPrice: 20,
	}, nil).Once()
	assert.NoError(t, s.Fetch(ctx))

	apiMock.On("ClearCart", mock.Anything).Return(api.NewAPIError(500, "internal error")).Once()

	assert.Error(t, s.Clear(ctx))
	assert.Equal(t, int64(2), s.TotalItems())
	assert.Equal(t, "internal error", s.ErrorMessage())

	apiMock.AssertExpectations(t)
}

// =====================
// エラー表示まわり
// =====================

func TestCartStore_ResetError(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	apiMock.On("ClearCart", mock.Anything).Return(api.NewAPIError(500, "internal error")).Once()
	assert.Error(t, s.Clear(ctx))
	assert.NotEmpty(t, s.ErrorMessage())

	s.ResetError()
	assert.Empty(t, s.ErrorMessage())
}

// 新しい操作の成功は前のエラーを上書きで消す
func TestCartStore_SuccessClearsPreviousError(t *testing.T) {
	ctx := context.Background()
	apiMock := new(CartAPIMock)
	s := store.NewCartStore(apiMock)

	apiMock.On("AddCartItem", mock.Anything, "g1", int64(1)).
		Return(model.CartSnapshot{}, api.NewAPIError(400, "game not available")).Once()
	assert.Error(t, s.AddItem(ctx, "g1", 1))
	assert.NotEmpty(t, s.ErrorMessage())

	apiMock.On("FetchCart", mock.Anything).Return(model.CartSnapshot{TotalPrice: 0}, nil).Once()
	assert.NoError(t, s.Fetch(ctx))
	assert.Empty(t, s.ErrorMessage())

	apiMock.AssertExpectations(t)
}
