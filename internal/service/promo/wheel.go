package promo

import (
	"math"
	"strconv"

	"velvet_bite/internal/model"
)

// PointerAngle Стрелка смотрит вниз: 90 градусов по часовой от оси X
const PointerAngle = 90.0

// SegmentWidth Угловой размер сектора в градусах
func SegmentWidth(n int) float64 {
	return 360 / float64(n)
}

// NormalizeAngle Приводит угол к [0, 360)
func NormalizeAngle(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	// -1e-15 + 360 округляется ровно до 360
	if m >= 360 {
		m -= 360
	}
	return m
}

// BuildSegments Сектора колеса. Сектор i занимает [i*w, (i+1)*w) по часовой от оси X
func BuildSegments(discounts []model.Discount, colors []string) []model.Segment {
	w := SegmentWidth(len(discounts))
	segments := make([]model.Segment, 0, len(discounts))
	for i, d := range discounts {
		color := ""
		if len(colors) > 0 {
			color = colors[i%len(colors)]
		}
		segments = append(segments, model.Segment{
			Index:      i,
			Discount:   d,
			Label:      strconv.Itoa(int(d)) + "%",
			Color:      color,
			StartAngle: float64(i) * w,
			EndAngle:   float64(i+1) * w,
		})
	}
	return segments
}

// ResolveSegment Какой сектор оказался под стрелкой при повороте колеса на theta
func ResolveSegment(theta float64, n int) int {
	atPointer := NormalizeAngle(PointerAngle - theta)
	return int(math.Floor(atPointer/SegmentWidth(n))) % n
}

// PlanSpin Целевой угол, при котором центр сектора idx (со смещением jitter)
// встает под стрелку. Колесо делает rounds полных оборотов от текущего угла from
func PlanSpin(from float64, n, idx, rounds int, jitter float64) model.SpinPlan {
	w := SegmentWidth(n)
	base := math.Floor(from/360) * 360
	target := base + float64(rounds)*360 + NormalizeAngle(PointerAngle-float64(idx)*w-w/2-jitter)

	return model.SpinPlan{
		ChosenIndex: idx,
		Rounds:      rounds,
		Jitter:      jitter,
		From:        from,
		Target:      target,
	}
}

// planSpin Случайный выбор сектора, числа оборотов и смещения внутри сектора
func (s *serv) planSpin(from float64) model.SpinPlan {
	n := len(s.segments)

	s.rndMtx.Lock()
	idx := s.rnd.IntN(n)
	rounds := s.cfg.MinRounds() + s.rnd.IntN(s.cfg.MaxRounds()-s.cfg.MinRounds()+1)
	jitter := (s.rnd.Float64()*2 - 1) * s.cfg.JitterFraction() * SegmentWidth(n)
	s.rndMtx.Unlock()

	return PlanSpin(from, n, idx, rounds, jitter)
}
