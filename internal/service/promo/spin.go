package promo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"velvet_bite/internal/model"
)

// Spin Запускает спин в открытом окне и ждет его завершения.
// Анимация не привязана к ctx запроса: если клиент ушел, спин все равно
// доигрывается и скидка сохраняется
func (s *serv) Spin(ctx context.Context, clientID string) (*model.SpinOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "promo.Spin")
	defer span.End()

	session, err := s.wheels.BeginSpin(clientID, func(from float64) model.SpinSession {
		return model.SpinSession{
			Plan:      s.planSpin(from),
			StartedAt: s.now(),
			Duration:  s.cfg.SpinDuration(),
		}
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("promo.chosen_index", session.Plan.ChosenIndex),
		attribute.Int("promo.rounds", session.Plan.Rounds),
		attribute.Float64("promo.target", session.Plan.Target),
	)

	result := make(chan *model.SpinOutcome, 1)
	s.animator.Animate(session, func(measured float64) {
		result <- s.completeSpin(clientID, session.Plan, measured)
	})

	select {
	case out := <-result:
		span.SetAttributes(attribute.Int("promo.discount", int(out.Discount)))
		return out, nil
	case <-ctx.Done():
		log.Debug().Str("client", clientID).Msg("client left before spin finished")
		return nil, ctx.Err()
	}
}

// completeSpin Колбэк окончания анимации. Сектор берется по измеренному углу
func (s *serv) completeSpin(clientID string, plan model.SpinPlan, measured float64) *model.SpinOutcome {
	idx := ResolveSegment(measured, len(s.segments))
	discount := s.segments[idx].Discount

	if idx != plan.ChosenIndex {
		log.Warn().
			Int("chosen", plan.ChosenIndex).
			Int("landed", idx).
			Float64("measured", measured).
			Msg("wheel landed on a different segment than planned")
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := s.store.Set(ctx, clientID, model.KeyActiveDiscount, discount.String()); err != nil {
		log.Warn().Err(err).Str("client", clientID).Msg("failed to store active discount")
	}
	if err := s.store.Set(ctx, clientID, model.KeyPromoSpun, model.SpunValue); err != nil {
		log.Warn().Err(err).Str("client", clientID).Msg("failed to store promo flag")
	}

	s.wheels.FinishSpin(clientID, plan.Target)

	return &model.SpinOutcome{
		Plan:          plan,
		MeasuredAngle: measured,
		Segment:       idx,
		Discount:      discount,
		Message:       fmt.Sprintf("Вам випала знижка %d%%, вона застосована до вашого замовлення", discount),
	}
}
