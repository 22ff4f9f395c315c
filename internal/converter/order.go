package converter

import (
	"bytes"
	"encoding/json"

	"velvet_bite/internal/api/dto/order"
	"velvet_bite/internal/model"
)

const codeItemsMustBeArray = "items_must_be_array"

// ToOrder Заказ из запроса. Позиции принимаются объектами {dish_id, qty}
// или парами [dish_id, qty]; нечитаемые позиции пропускаются
func ToOrder(req order.OrderRequest) (model.Order, error) {
	items, err := toOrderItems(req.Items)
	if err != nil {
		return model.Order{}, err
	}
	return model.Order{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Items:   items,
	}, nil
}

func toOrderItems(raw json.RawMessage) ([]model.OrderItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var elems []json.RawMessage
	if raw[0] != '[' || json.Unmarshal(raw, &elems) != nil {
		return nil, model.NewValidationError(codeItemsMustBeArray)
	}

	items := make([]model.OrderItem, 0, len(elems))
	for _, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) == 0 {
			continue
		}
		switch e[0] {
		case '{':
			var it order.OrderItem
			if json.Unmarshal(e, &it) != nil {
				continue
			}
			items = append(items, model.OrderItem{DishID: it.DishID, Qty: it.Qty})
		case '[':
			var pair []int
			if json.Unmarshal(e, &pair) != nil || len(pair) == 0 {
				continue
			}
			it := model.OrderItem{DishID: pair[0], Qty: 1}
			if len(pair) > 1 {
				it.Qty = pair[1]
			}
			items = append(items, it)
		}
	}
	return items, nil
}

func ToCreateOrderResponse(o model.Order) order.CreateOrderResponse {
	return order.CreateOrderResponse{
		ID:       o.ID,
		Subtotal: json.Number(o.Subtotal.String()),
		Discount: int(o.Discount),
		Total:    json.Number(o.Total.String()),
	}
}

func ToOrderListResponse(orders []model.Order) []order.OrderResponse {
	result := make([]order.OrderResponse, len(orders))
	for i, o := range orders {
		items := make([]order.OrderItem, len(o.Items))
		for j, it := range o.Items {
			items[j] = order.OrderItem{DishID: it.DishID, Qty: it.Qty}
		}
		result[i] = order.OrderResponse{
			ID:        o.ID,
			Name:      o.Name,
			Phone:     o.Phone,
			Address:   o.Address,
			Items:     items,
			Discount:  int(o.Discount),
			Subtotal:  json.Number(o.Subtotal.String()),
			Total:     json.Number(o.Total.String()),
			CreatedAt: o.CreatedAt,
		}
	}
	return result
}
