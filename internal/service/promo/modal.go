package promo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"velvet_bite/internal/model"
)

// OpenModal Открывает окно с колесом. Без force окно не показывается,
// если клиент уже крутил колесо или закрывал окно
func (s *serv) OpenModal(ctx context.Context, clientID string, force bool) (*model.Modal, bool, error) {
	ctx, span := s.tracer.Start(ctx, "promo.OpenModal")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	if !force {
		spun := s.store.Get(ctx, clientID, model.KeyPromoSpun)
		if spun.Err != nil {
			log.Warn().Err(spun.Err).Str("client", clientID).Msg("failed to read promo flag")
		}
		if spun.Ok() && spun.Value != "" {
			return nil, false, nil
		}
	}

	s.wheels.OpenModal(clientID)

	modal := &model.Modal{
		Segments:     append([]model.Segment(nil), s.segments...),
		PointerAngle: PointerAngle,
		SpinDuration: s.cfg.SpinDuration(),
	}

	svg, err := s.WheelSVG()
	if err != nil {
		log.Error().Err(err).Msg("failed to render wheel")
	}
	modal.SVG = svg

	return modal, true, nil
}

// CloseModal Закрывает окно и запоминает, что окно больше не показывать.
// Окно закрывается даже если флаг сохранить не удалось
func (s *serv) CloseModal(ctx context.Context, clientID string) error {
	s.wheels.CloseModal(clientID)

	if err := s.store.Set(ctx, clientID, model.KeyPromoSpun, model.SpunValue); err != nil {
		return fmt.Errorf("persist promo flag: %w", err)
	}
	return nil
}
