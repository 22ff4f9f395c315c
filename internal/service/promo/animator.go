package promo

import (
	"math"
	"time"

	"velvet_bite/internal/model"
)

// Animator проигрывает спин и по окончании вызывает done с измеренным углом
type Animator interface {
	Animate(session model.SpinSession, done func(measured float64))
}

type timerAnimator struct{}

func NewTimerAnimator() Animator {
	return timerAnimator{}
}

// Animate Колесо доезжает до цели за session.Duration. Итоговый угол
// читается обратно из матрицы поворота, как из вычисленного transform
func (timerAnimator) Animate(session model.SpinSession, done func(measured float64)) {
	target := session.Plan.Target
	time.AfterFunc(session.Duration, func() {
		done(MeasureRotation(RotationMatrix(target)))
	})
}

// RotationMatrix Матрица поворота в порядке matrix(a, b, c, d, e, f)
func RotationMatrix(deg float64) [6]float64 {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return [6]float64{cos, sin, -sin, cos, 0, 0}
}

// MeasureRotation Угол поворота из матрицы, в [0, 360)
func MeasureRotation(m [6]float64) float64 {
	return NormalizeAngle(math.Atan2(m[1], m[0]) * 180 / math.Pi)
}

// spinEasing cubic-bezier(.2,.9,.2,1)
var spinEasing = cubicBezier{x1: 0.2, y1: 0.9, x2: 0.2, y2: 1}

type cubicBezier struct {
	x1, y1, x2, y2 float64
}

func (c cubicBezier) sample(p1, p2, t float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

// Ease Прогресс анимации для доли времени x
func (c cubicBezier) Ease(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2
		if c.sample(c.x1, c.x2, mid) < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return c.sample(c.y1, c.y2, (lo+hi)/2)
}

// currentAngle Угол колеса в момент now для идущего спина
func currentAngle(session model.SpinSession, now time.Time) float64 {
	if session.Duration <= 0 {
		return session.Plan.Target
	}
	progress := float64(now.Sub(session.StartedAt)) / float64(session.Duration)
	p := session.Plan
	return p.From + (p.Target-p.From)*spinEasing.Ease(progress)
}
