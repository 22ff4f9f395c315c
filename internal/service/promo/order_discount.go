package promo

import (
	"context"

	"velvet_bite/internal/model"
)

// OrderDiscount Скидка для формы заказа: значение поля discountInput и текст discountInfo
func (s *serv) OrderDiscount(ctx context.Context, clientID string) model.OrderDiscount {
	discount, ok := s.activeDiscount(ctx, clientID)
	if !ok || discount == 0 {
		return model.OrderDiscount{}
	}
	return model.OrderDiscount{
		Discount: discount,
		Info:     discountText(discount),
	}
}
