// Package mockapi はストアAPIのインメモリ実装。
// 開発用サーバ（cmd/mockapi）と結合テストの相手として使う。
// 永続化は持たない（プロセスが死んだら消える前提）。
package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"gamestore/internal/domain/model"
)

const tokenTTL = 1 * time.Hour

type user struct {
	model.User
	passwordHash []byte
}

type Server struct {
	echo   *echo.Echo
	secret []byte

	mu          sync.Mutex
	users       map[string]*user             // id -> user
	byEmail     map[string]string            // email -> id
	games       map[string]*model.Game       // id -> game
	gameOrder   []string                     // 登録順（一覧の並び）
	carts       map[string][]model.CartLineItem // userID -> 明細
	wishlists   map[string][]string          // userID -> gameID列
	orders      map[string]model.Order       // id -> order
	orderByKey  map[string]string            // userID+"\x00"+idempotencyKey -> orderID
	resetTokens map[string]string            // token -> userID
}

func New(secret string) *Server {
	s := &Server{
		echo:        echo.New(),
		secret:      []byte(secret),
		users:       map[string]*user{},
		byEmail:     map[string]string{},
		games:       map[string]*model.Game{},
		carts:       map[string][]model.CartLineItem{},
		wishlists:   map[string][]string{},
		orders:      map[string]model.Order{},
		orderByKey:  map[string]string{},
		resetTokens: map[string]string{},
	}
	s.echo.HideBanner = true
	s.registerRoutes()
	return s
}

// Handler はhttptest.NewServerにそのまま渡せる。
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) registerRoutes() {
	e := s.echo

	//認証不要
	e.POST("/auth/register", s.register)
	e.POST("/auth/login", s.login)
	e.POST("/auth/reset-password-request", s.resetPasswordRequest)
	e.POST("/auth/reset-password", s.resetPassword)
	e.GET("/games", s.listGames)
	e.GET("/games/:id", s.getGame)
	e.GET("/wishlist/:gameId/count", s.wishlistCount)

	//Bearer必須
	g := e.Group("", s.authJWT)
	g.GET("/cart", s.getCart)
	g.POST("/cart", s.clearCart)
	g.POST("/cart/items", s.addCartItem)
	g.DELETE("/cart/items", s.removeCartItem)
	g.POST("/cart/increase", s.increaseQuantity)
	g.POST("/cart/decrease", s.decreaseQuantity)
	g.POST("/checkout", s.checkout)
	g.GET("/wishlist", s.getWishlist)
	g.POST("/wishlist", s.addToWishlist)
	g.DELETE("/wishlist", s.removeFromWishlist)
	g.GET("/games/company", s.companyGames)
	g.POST("/games", s.createGame)
	g.PUT("/games/publish/:id", s.togglePublish)
	g.PUT("/games/:id", s.updateGame)
	g.DELETE("/games/:id", s.deleteGame)
	g.PUT("/games/:id/views", s.incrementViews)
	g.GET("/users", s.getUser)
}

// エラーボディはクライアントの規約どおり {"message": "..."}
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"message": message})
}
