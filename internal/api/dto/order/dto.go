package order

import (
	"encoding/json"
	"time"
)

type OrderRequest struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Items   json.RawMessage `json:"items"`
}

type OrderItem struct {
	DishID int `json:"dish_id"`
	Qty    int `json:"qty"`
}

type CreateOrderResponse struct {
	ID       int         `json:"id"`
	Subtotal json.Number `json:"subtotal"`
	Discount int         `json:"discount"`
	Total    json.Number `json:"total"`
}

type OrderResponse struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	Items     []OrderItem `json:"items"`
	Discount  int         `json:"discount"`
	Subtotal  json.Number `json:"subtotal"`
	Total     json.Number `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
}
