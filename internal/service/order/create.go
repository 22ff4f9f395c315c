package order

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"velvet_bite/internal/model"
)

const (
	codeAddressRequired = "address_required"
	defaultName         = "Guest"
)

var hundred = decimal.NewFromInt(100)

// Create Считает сумму по ценам каталога и применяет активную скидку клиента.
// Скидка перечитывается непосредственно перед записью заказа
func (s *serv) Create(ctx context.Context, clientID string, order model.Order) (*model.Order, error) {
	order.Address = strings.TrimSpace(order.Address)
	if order.Address == "" {
		return nil, model.NewValidationError(codeAddressRequired)
	}
	if strings.TrimSpace(order.Name) == "" {
		order.Name = defaultName
	}
	order.Items = normalizeItems(order.Items)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		ids := make([]int, 0, len(order.Items))
		for _, it := range order.Items {
			ids = append(ids, it.DishID)
		}

		prices := map[int]decimal.Decimal{}
		if len(ids) > 0 {
			var err error
			prices, err = s.dishRepo.GetPrices(txCtx, ids)
			if err != nil {
				return err
			}
		}

		subtotal := decimal.Zero
		for _, it := range order.Items {
			// блюда нет в каталоге: позиция идет по нулевой цене
			subtotal = subtotal.Add(prices[it.DishID].Mul(decimal.NewFromInt(int64(it.Qty))))
		}

		order.Discount = s.activeDiscount(txCtx, clientID)
		order.Subtotal = subtotal
		order.Total = applyDiscount(subtotal, order.Discount)

		id, err := s.orderRepo.CreateOrder(txCtx, &order)
		if err != nil {
			return err
		}
		order.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *serv) List(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.ListOrders(ctx)
}

func (s *serv) activeDiscount(ctx context.Context, clientID string) model.Discount {
	res := s.store.Get(ctx, clientID, model.KeyActiveDiscount)
	if res.Err != nil {
		log.Warn().Err(res.Err).Str("client", clientID).Msg("failed to read active discount, order goes without it")
		return 0
	}
	if !res.Found {
		return 0
	}
	d, ok := model.ParseActiveDiscount(res.Value, s.allowed)
	if !ok {
		log.Warn().Str("client", clientID).Str("value", res.Value).Msg("unknown stored discount, order goes without it")
		return 0
	}
	return d
}

func applyDiscount(subtotal decimal.Decimal, d model.Discount) decimal.Decimal {
	if d == 0 {
		return subtotal
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(d))).Div(hundred)
	return subtotal.Mul(factor).Round(2)
}

// normalizeItems Позиции без блюда отбрасываются, количество по умолчанию 1
func normalizeItems(items []model.OrderItem) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		if it.DishID <= 0 || it.Qty < 0 {
			continue
		}
		if it.Qty == 0 {
			it.Qty = 1
		}
		out = append(out, it)
	}
	return out
}
