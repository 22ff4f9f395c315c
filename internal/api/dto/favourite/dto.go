package favourite

import (
	"encoding/json"
	"time"
)

// FavouriteRequest ID приходят числом или строкой с числом
type FavouriteRequest struct {
	DishID    json.RawMessage `json:"dish_id"`
	AccountID json.RawMessage `json:"account_id"`
}

type FavouriteResponse struct {
	ID        int       `json:"id"`
	DishID    int       `json:"dish_id"`
	AccountID *int      `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateFavouriteResponse struct {
	ID int `json:"id"`
}
