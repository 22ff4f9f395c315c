package converter

import (
	"strconv"

	"velvet_bite/internal/api/dto/promo"
	"velvet_bite/internal/model"
)

func ToModalResponse(modal *model.Modal, opened bool) promo.ModalResponse {
	if !opened || modal == nil {
		return promo.ModalResponse{Open: false}
	}

	segments := make([]promo.SegmentResponse, len(modal.Segments))
	for i, s := range modal.Segments {
		segments[i] = promo.SegmentResponse{
			Index:      s.Index,
			Discount:   int(s.Discount),
			Label:      s.Label,
			Color:      s.Color,
			StartAngle: s.StartAngle,
			EndAngle:   s.EndAngle,
		}
	}

	return promo.ModalResponse{
		Open:           true,
		Segments:       segments,
		PointerAngle:   modal.PointerAngle,
		SpinDurationMs: modal.SpinDuration.Milliseconds(),
		SVG:            modal.SVG,
	}
}

func ToSpinResponse(out model.SpinOutcome) promo.SpinResponse {
	return promo.SpinResponse{
		ChosenIndex:   out.Plan.ChosenIndex,
		Rounds:        out.Plan.Rounds,
		From:          out.Plan.From,
		Target:        out.Plan.Target,
		MeasuredAngle: out.MeasuredAngle,
		Segment:       out.Segment,
		Discount:      int(out.Discount),
		Message:       out.Message,
	}
}

func ToStateResponse(state model.PromoWheelState) promo.StateResponse {
	var discount *int
	if state.Discount != nil {
		d := int(*state.Discount)
		discount = &d
	}
	return promo.StateResponse{
		Spinning:     state.Spinning,
		ModalOpen:    state.ModalOpen,
		Discount:     discount,
		Spun:         state.Spun,
		CurrentAngle: state.CurrentAngle,
	}
}

func ToBadgeResponse(badge *model.Badge, show bool) promo.BadgeResponse {
	if !show || badge == nil {
		return promo.BadgeResponse{Show: false}
	}
	return promo.BadgeResponse{
		Show:     true,
		Discount: int(badge.Discount),
		Text:     badge.Text,
		Action:   badge.Action,
		Target:   badge.Target,
	}
}

func ToOrderDiscountResponse(od model.OrderDiscount) promo.OrderDiscountResponse {
	return promo.OrderDiscountResponse{
		DiscountInput: strconv.Itoa(int(od.Discount)),
		DiscountInfo:  od.Info,
	}
}
