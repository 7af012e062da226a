package mockapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"gamestore/internal/domain/model"
)

type cartItemRequest struct {
	GameID   string `json:"gameId"`
	Quantity int64  `json:"quantity"`
}

// スナップショットの計算。muを握った状態で呼ぶ。
func (s *Server) cartSnapshot(userID string) model.CartSnapshot {
	items := s.carts[userID]
	out := make([]model.CartLineItem, len(items))
	copy(out, items)

	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return model.CartSnapshot{Items: out, TotalPrice: total}
}

func (s *Server) getCart(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	s.mu.Lock()
	snap := s.cartSnapshot(userID)
	s.mu.Unlock()

	return c.JSON(http.StatusOK, snap)
}

// 同一ゲームは数量加算、無ければ明細を作る。
func (s *Server) addCartItem(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	if req.Quantity < 1 {
		return errorJSON(c, http.StatusBadRequest, "invalid quantity")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, exists := s.games[req.GameID]
	if !exists || !g.IsPublished {
		return errorJSON(c, http.StatusBadRequest, "game not available")
	}

	items := s.carts[userID]
	merged := false
	for i := range items {
		if items[i].GameID == req.GameID {
			items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, model.CartLineItem{
			GameID:   g.ID,
			Name:     g.Name,
			ImageURL: g.ImageURL,
			Price:    g.Price,
			Quantity: req.Quantity,
		})
	}
	s.carts[userID] = items

	return c.JSON(http.StatusOK, echo.Map{"cart": s.cartSnapshot(userID)})
}

func (s *Server) removeCartItem(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	kept := items[:0]
	found := false
	for _, it := range items {
		if it.GameID == req.GameID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return errorJSON(c, http.StatusNotFound, "item not in cart")
	}
	s.carts[userID] = kept

	return c.JSON(http.StatusOK, echo.Map{"cart": s.cartSnapshot(userID)})
}

func (s *Server) increaseQuantity(c echo.Context) error {
	return s.adjustQuantity(c, +1)
}

func (s *Server) decreaseQuantity(c echo.Context) error {
	return s.adjustQuantity(c, -1)
}

// 数量を±1する。0になった明細は消す（このサーバのポリシー。クライアントは特別扱いしない）。
func (s *Server) adjustQuantity(c echo.Context, delta int64) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	idx := -1
	for i := range items {
		if items[i].GameID == req.GameID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errorJSON(c, http.StatusNotFound, "item not in cart")
	}

	items[idx].Quantity += delta
	if items[idx].Quantity < 1 {
		items = append(items[:idx], items[idx+1:]...)
	}
	s.carts[userID] = items

	return c.JSON(http.StatusOK, echo.Map{"cart": s.cartSnapshot(userID)})
}

func (s *Server) clearCart(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	s.mu.Lock()
	s.carts[userID] = nil
	s.mu.Unlock()

	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}

// checkout は注文を作ってカートを空にする。
// X-Idempotency-Keyが既知なら前回の注文をそのまま返す。
func (s *Server) checkout(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var form model.OrderForm
	if err := c.Bind(&form); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	key := c.Request().Header.Get("X-Idempotency-Key")

	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		if orderID, seen := s.orderByKey[userID+"\x00"+key]; seen {
			return c.JSON(http.StatusOK, s.orders[orderID])
		}
	}

	snap := s.cartSnapshot(userID)
	if len(snap.Items) == 0 {
		return errorJSON(c, http.StatusBadRequest, "cart is empty")
	}

	order := model.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		Items:      snap.Items,
		TotalPrice: snap.TotalPrice,
		CreatedAt:  time.Now(),
	}
	s.orders[order.ID] = order
	if key != "" {
		s.orderByKey[userID+"\x00"+key] = order.ID
	}

	//購入したゲームをプロフィールに足してカートを空にする
	u := s.users[userID]
	for _, it := range snap.Items {
		u.Games = append(u.Games, it.GameID)
	}
	s.carts[userID] = nil

	return c.JSON(http.StatusCreated, order)
}
