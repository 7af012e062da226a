package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"gamestore/internal/api"
	"gamestore/internal/config"
	"gamestore/internal/domain/model"
	"gamestore/internal/session"
	"gamestore/internal/store"
)

// 動作確認用のCLI。ログインしてカート操作とチェックアウトを一通り叩く。
// 必要な環境変数: API_URL, GO_ENV, STORE_EMAIL, STORE_PASSWORD
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	email := os.Getenv("STORE_EMAIL")
	password := os.Getenv("STORE_PASSWORD")
	if email == "" || password == "" {
		panic("STORE_EMAIL and STORE_PASSWORD are required")
	}

	//SessionはClientの資格情報でもあるので後差しで配線する
	client := api.NewClient(cfg.APIURL, nil, cfg.HTTPTimeout)
	sess := session.New(client)
	client.SetCredentials(sess)

	carts := store.NewCartStore(client)
	orders := store.NewOrderStore(client)
	games := store.NewGameStore(client)

	ctx := context.Background()

	if err := sess.Login(ctx, email, password); err != nil {
		fmt.Fprintln(os.Stderr, "login failed:", sess.ErrorMessage())
		os.Exit(1)
	}
	user, _ := sess.User()
	fmt.Printf("logged in as %s (%s)\n", user.Name, user.Role)

	//empresaはカートを持たないのでカタログだけ見せて終わる
	if sess.Role() == model.RoleCompany {
		if err := games.FetchCompanyGames(ctx); err != nil {
			fmt.Fprintln(os.Stderr, games.ErrorMessage())
			os.Exit(1)
		}
		for _, g := range games.CompanyGames() {
			fmt.Printf("  %s  published=%v views=%d\n", g.Name, g.IsPublished, g.Views)
		}
		return
	}

	if err := games.List(ctx, nil); err != nil {
		fmt.Fprintln(os.Stderr, games.ErrorMessage())
		os.Exit(1)
	}
	catalog := games.Catalog()
	if len(catalog) == 0 {
		fmt.Println("catalog is empty, nothing to buy")
		return
	}

	if err := carts.AddItem(ctx, catalog[0].ID, 2); err != nil {
		fmt.Fprintln(os.Stderr, carts.ErrorMessage())
		os.Exit(1)
	}
	printCart(carts.Cart())

	if err := carts.IncreaseQuantity(ctx, catalog[0].ID); err != nil {
		fmt.Fprintln(os.Stderr, carts.ErrorMessage())
		os.Exit(1)
	}
	printCart(carts.Cart())

	//フォームを埋めて注文。整形は表示用で検証はサーバの仕事
	orders.UpdateField("cardName", user.Name)
	orders.UpdateField("cardNumber", store.FormatCardNumber("4242424242424242"))
	orders.UpdateField("cardCVC", store.FormatCardCVC("123"))
	orders.UpdateField("cardExpiry", store.FormatCardExpiry("1230"))
	orders.UpdateField("address", "Av. Siempre Viva 742")
	orders.UpdateField("country", "AR")
	orders.UpdateField("province", "Buenos Aires")
	orders.UpdateField("city", "CABA")
	orders.UpdateField("postalCode", "C1000")

	order, err := orders.Submit(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "checkout failed:", orders.ErrorMessage())
		os.Exit(1)
	}
	fmt.Printf("order %s confirmed, total %.2f\n", order.ID, order.TotalPrice)

	//成功したらカートを空にするのは呼び出し側の責任
	if err := carts.Clear(ctx); err != nil {
		fmt.Fprintln(os.Stderr, carts.ErrorMessage())
		os.Exit(1)
	}
	printCart(carts.Cart())
}

func printCart(cart model.Cart) {
	fmt.Printf("cart: %d items, total %.2f\n", cart.TotalItems, cart.TotalPrice)
	for _, it := range cart.Items {
		fmt.Printf("  %s x%d  %.2f\n", it.Name, it.Quantity, it.Price)
	}
}
