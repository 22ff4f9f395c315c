package promo

import (
	"context"

	"github.com/rs/zerolog/log"

	"velvet_bite/internal/model"
)

// SpinState Состояние колеса клиента. Во время спина отдает текущий угол по кривой анимации
func (s *serv) SpinState(ctx context.Context, clientID string) model.PromoWheelState {
	w := s.wheels.Wheel(clientID)

	state := model.PromoWheelState{
		ModalOpen:    w.ModalOpen,
		CurrentAngle: w.RestAngle,
	}
	if w.Session != nil {
		state.Spinning = true
		state.CurrentAngle = currentAngle(*w.Session, s.now())
	}

	spun := s.store.Get(ctx, clientID, model.KeyPromoSpun)
	if spun.Err != nil {
		log.Warn().Err(spun.Err).Str("client", clientID).Msg("failed to read promo flag")
	}
	state.Spun = spun.Ok() && spun.Value != ""

	if d, ok := s.activeDiscount(ctx, clientID); ok {
		state.Discount = &d
	}
	return state
}

// activeDiscount Сохраненная скидка клиента. false, если ее нет, она не читается
// или не совпадает ни с одним сектором колеса
func (s *serv) activeDiscount(ctx context.Context, clientID string) (model.Discount, bool) {
	res := s.store.Get(ctx, clientID, model.KeyActiveDiscount)
	if res.Err != nil {
		log.Warn().Err(res.Err).Str("client", clientID).Msg("failed to read active discount")
		return 0, false
	}
	if !res.Found || res.Value == "" {
		return 0, false
	}
	d, ok := model.ParseActiveDiscount(res.Value, s.discounts)
	if !ok {
		log.Debug().Str("client", clientID).Str("value", res.Value).Msg("ignoring unknown stored discount")
	}
	return d, ok
}
