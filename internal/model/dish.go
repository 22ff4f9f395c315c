package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dish struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Ingredients string
	Calories    *int
}

// DishPatch - частичное обновление блюда. nil = поле не меняется
type DishPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Ingredients *string
	Calories    *int
}

type OrderItem struct {
	DishID int `json:"dish_id"`
	Qty    int `json:"qty"`
}

type Order struct {
	ID        int
	Name      string
	Phone     string
	Address   string
	Items     []OrderItem
	Discount  Discount
	Subtotal  decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}
