package promo

import (
	"context"
	"fmt"
	"strings"

	"velvet_bite/internal/model"
)

const orderPath = "/order"

// Badge Плашка со скидкой. Показывается только на главной и страницах блюд
func (s *serv) Badge(ctx context.Context, clientID, path string) (*model.Badge, bool) {
	if !badgePage(path) {
		return nil, false
	}

	discount, ok := s.activeDiscount(ctx, clientID)
	if !ok {
		return nil, false
	}

	badge := &model.Badge{
		Discount: discount,
		Text:     discountText(discount),
		Action:   model.BadgeActionNavigate,
		Target:   orderPath,
	}

	// скидка есть, а флага нет: окно еще не показывалось
	spun := s.store.Get(ctx, clientID, model.KeyPromoSpun)
	if spun.Err == nil && (!spun.Found || spun.Value == "") {
		badge.Action = model.BadgeActionOpenModal
		badge.Target = "/api/promo/modal"
	}
	return badge, true
}

func badgePage(path string) bool {
	return path == "/" || path == "/index.html" || strings.HasPrefix(path, "/dish")
}

func discountText(d model.Discount) string {
	return fmt.Sprintf("Знижка %d%% застосована", d)
}
