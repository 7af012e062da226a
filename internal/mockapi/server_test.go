package mockapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gamestore/internal/api"
	"gamestore/internal/domain/model"
	"gamestore/internal/mockapi"
	"gamestore/internal/session"
	"gamestore/internal/store"
)

type env struct {
	srv    *httptest.Server
	client *api.Client
	sess   *session.Session
}

func newEnv(t *testing.T) *env {
	t.Helper()

	mock := mockapi.New("test_secret")
	mock.Seed()
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, nil, 5*time.Second)
	sess := session.New(client)
	client.SetCredentials(sess)

	return &env{srv: srv, client: client, sess: sess}
}

func (e *env) loginAs(t *testing.T, email string) {
	t.Helper()
	assert.NoError(t, e.sess.Login(context.Background(), email, "password"))
}

func catalog(t *testing.T, e *env) []model.Game {
	t.Helper()
	games, err := e.client.ListGames(context.Background(), nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, games)
	return games
}

// =====================
// 購入フロー一式
// =====================

func TestFlow_RegisterLoginShopCheckout(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	//登録してもログイン状態にはならない
	_, err := e.sess.Register(ctx, api.RegisterRequest{
		Name:     "Shopper",
		Email:    "shopper@example.com",
		Password: "password",
		Role:     model.RoleUser,
	})
	assert.NoError(t, err)
	assert.False(t, e.sess.IsAuthenticated())

	e.loginAs(t, "shopper@example.com")
	assert.True(t, e.sess.Valid(time.Now()))

	games := catalog(t, e)
	g1, g2 := games[0], games[1]

	cart := store.NewCartStore(e.client)
	assert.NoError(t, cart.Fetch(ctx))
	assert.Equal(t, int64(0), cart.TotalItems())

	//追加はquantityぶん楽観加算
	assert.NoError(t, cart.AddItem(ctx, g1.ID, 2))
	assert.NoError(t, cart.AddItem(ctx, g2.ID, 1))
	assert.Equal(t, int64(3), cart.TotalItems())

	assert.NoError(t, cart.IncreaseQuantity(ctx, g1.ID))
	assert.Equal(t, int64(4), cart.TotalItems())

	assert.NoError(t, cart.DecreaseQuantity(ctx, g2.ID))
	assert.Equal(t, int64(3), cart.TotalItems())

	wantTotal := g1.Price * 3
	assert.InDelta(t, wantTotal, cart.TotalPrice(), 0.001)

	order := store.NewOrderStore(e.client)
	order.UpdateField("cardName", "SHOPPER")
	order.UpdateField("cardNumber", store.FormatCardNumber("4242424242424242"))
	order.UpdateField("cardExpiry", store.FormatCardExpiry("1230"))
	order.UpdateField("cardCVC", store.FormatCardCVC("123"))
	order.UpdateField("address", "1 Main St")
	order.UpdateField("country", "ES")
	order.UpdateField("province", "Madrid")
	order.UpdateField("city", "Madrid")
	order.UpdateField("postalCode", "28001")

	placed, err := order.Submit(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, placed.ID)
	assert.InDelta(t, wantTotal, placed.TotalPrice, 0.001)
	assert.Equal(t, store.PhaseSucceeded, order.Phase())
	assert.Empty(t, order.Form().CardNumber)

	//チェックアウト後、サーバ側のカートは空
	assert.NoError(t, cart.Fetch(ctx))
	assert.Equal(t, int64(0), cart.TotalItems())
	assert.Empty(t, cart.Cart().Items)

	//購入したゲームがプロフィールに載る
	users := store.NewUserStore(e.client)
	assert.NoError(t, users.Fetch(ctx))
	u, ok := users.User()
	assert.True(t, ok)
	assert.Contains(t, u.Games, g1.ID)
}

func TestFlow_CheckoutEmptyCartRejected(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAs(t, "demo@example.com")

	order := store.NewOrderStore(e.client)
	_, err := order.Submit(ctx)
	assert.Error(t, err)
	assert.Equal(t, "cart is empty", order.ErrorMessage())
	assert.Equal(t, store.PhaseFailed, order.Phase())
}

// 同じキーの再送は前回の注文をそのまま返す
func TestFlow_CheckoutIdempotencyReplay(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAs(t, "demo@example.com")

	g := catalog(t, e)[0]
	_, err := e.client.AddCartItem(ctx, g.ID, 1)
	assert.NoError(t, err)

	first, err := e.client.CreateOrder(ctx, model.OrderForm{}, "key-1")
	assert.NoError(t, err)

	replay, err := e.client.CreateOrder(ctx, model.OrderForm{}, "key-1")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)
}

func TestFlow_UnauthorizedCartAccess(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	cart := store.NewCartStore(e.client)
	assert.Error(t, cart.Fetch(ctx))
	assert.Equal(t, store.StatusFailed, cart.Status())
	assert.NotEmpty(t, cart.ErrorMessage())
}

func TestFlow_DecreaseToZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAs(t, "demo@example.com")

	g := catalog(t, e)[0]
	cart := store.NewCartStore(e.client)
	assert.NoError(t, cart.AddItem(ctx, g.ID, 1))

	assert.NoError(t, cart.DecreaseQuantity(ctx, g.ID))
	assert.Empty(t, cart.Cart().Items)
	assert.Equal(t, int64(0), cart.TotalItems())
}

// =====================
// ウィッシュリスト
// =====================

func TestFlow_Wishlist(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAs(t, "demo@example.com")

	g := catalog(t, e)[0]

	wl := store.NewWishlistStore(e.client)
	assert.NoError(t, wl.Add(ctx, g.Name))
	assert.NoError(t, wl.Fetch(ctx))
	assert.Len(t, wl.Games(), 1)
	assert.Equal(t, g.ID, wl.Games()[0].ID)

	count, err := wl.FetchCount(ctx, g.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, wl.Remove(ctx, g.ID))
	assert.Empty(t, wl.Games())
}

// =====================
// 会社ロール
// =====================

func TestFlow_CompanyGameLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAs(t, "studio@example.com")
	assert.Equal(t, model.RoleCompany, e.sess.Role())

	gamesStore := store.NewGameStore(e.client)
	assert.NoError(t, gamesStore.FetchCompanyGames(ctx))
	before := len(gamesStore.CompanyGames())

	created, err := gamesStore.Create(ctx, api.GameInput{
		Name:     "Starlit Caravan",
		Price:    14.99,
		Category: []string{"adventure"},
		Platform: "pc",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Game created successfully.", gamesStore.SuccessMessage())

	//新作は非公開スタート、カタログには出ない
	all, err := e.client.ListGames(ctx, nil)
	assert.NoError(t, err)
	for _, g := range all {
		assert.NotEqual(t, created.ID, g.ID)
	}

	assert.NoError(t, gamesStore.FetchCompanyGames(ctx))
	assert.Len(t, gamesStore.CompanyGames(), before+1)

	assert.NoError(t, gamesStore.TogglePublish(ctx, created.ID))
	all, err = e.client.ListGames(ctx, nil)
	assert.NoError(t, err)
	found := false
	for _, g := range all {
		if g.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found)

	assert.NoError(t, gamesStore.Delete(ctx, created.ID))
}

func TestFlow_BuyerCannotCreateGame(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAs(t, "demo@example.com")

	_, err := e.client.CreateGame(ctx, api.GameInput{Name: "Nope"})
	assert.Error(t, err)

	ae, ok := api.AsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, ae.Status)
}

// =====================
// フィルタ
// =====================

func TestFlow_CatalogFilter(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	f := store.NewFilterState()
	f.SetCategory([]string{"puzzle"})

	gamesStore := store.NewGameStore(e.client)
	assert.NoError(t, gamesStore.List(ctx, f))

	got := gamesStore.Catalog()
	assert.Len(t, got, 1)
	assert.Equal(t, "Puzzle Tides", got[0].Name)
}

// =====================
// パスワードリセット
// =====================

func TestFlow_PasswordReset(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	msg, err := e.sess.RequestPasswordReset(ctx, "demo@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "Password reset email sent", msg)

	//トークンはメールで届く体。モックはボディに同梱するので生リクエストで拾う
	resp, err := http.Post(e.srv.URL+"/auth/reset-password-request", "application/json",
		strings.NewReader(`{"email":"demo@example.com"}`))
	assert.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		ResetToken string `json:"resetToken"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.ResetToken)

	_, err = e.sess.ResetPassword(ctx, out.ResetToken, "newpassword")
	assert.NoError(t, err)

	//旧パスワードはもう通らない
	assert.Error(t, e.sess.Login(ctx, "demo@example.com", "password"))
	assert.NoError(t, e.sess.Login(ctx, "demo@example.com", "newpassword"))
}
