package converter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"velvet_bite/internal/api/dto/dish"
	"velvet_bite/internal/model"
)

const codePriceMustBeNumber = "price_must_be_number"

func ToDishResponse(d model.Dish) dish.DishResponse {
	return dish.DishResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       json.Number(d.Price.String()),
		Image:       d.Image,
		Ingredients: d.Ingredients,
		Calories:    d.Calories,
	}
}

func ToDishListResponse(dishes []model.Dish) []dish.DishResponse {
	result := make([]dish.DishResponse, len(dishes))
	for i, d := range dishes {
		result[i] = ToDishResponse(d)
	}
	return result
}

// ToDish Новое блюдо из запроса. Пустая цена = 0
func ToDish(req dish.DishRequest) (model.Dish, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return model.Dish{}, err
	}

	d := model.Dish{
		Name:        deref(req.Name),
		Description: deref(req.Description),
		Image:       deref(req.Image),
		Ingredients: deref(req.Ingredients),
		Calories:    req.Calories,
	}
	if price != nil {
		d.Price = *price
	}
	return d, nil
}

func ToDishPatch(req dish.DishRequest) (model.DishPatch, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return model.DishPatch{}, err
	}
	return model.DishPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       req.Image,
		Ingredients: req.Ingredients,
		Calories:    req.Calories,
	}, nil
}

// parsePrice Цена числом или строкой с числом. null и отсутствие поля = nil
func parsePrice(raw json.RawMessage) (*decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, model.NewValidationError(codePriceMustBeNumber)
		}
		text = strings.TrimSpace(text)
	}

	price, err := decimal.NewFromString(text)
	if err != nil || price.IsNegative() {
		return nil, model.NewValidationError(codePriceMustBeNumber)
	}
	return &price, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
