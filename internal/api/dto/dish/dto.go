package dish

import "encoding/json"

type DishResponse struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Image       string      `json:"image"`
	Ingredients string      `json:"ingredients"`
	Calories    *int        `json:"calories"`
}

// DishRequest Тело создания и обновления. Цена может прийти числом или строкой
type DishRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Price       json.RawMessage `json:"price"`
	Image       *string         `json:"image"`
	Ingredients *string         `json:"ingredients"`
	Calories    *int            `json:"calories"`
}

type CreateDishResponse struct {
	ID int `json:"id"`
}

type OkResponse struct {
	Ok bool `json:"ok"`
}
