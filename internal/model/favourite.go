package model

import "time"

// Favourite - блюдо в избранном. AccountID nil = избранное без аккаунта
type Favourite struct {
	ID        int
	DishID    int
	AccountID *int
	CreatedAt time.Time
}

type Account struct {
	ID        int
	Name      string
	Email     string
	CreatedAt time.Time
}
