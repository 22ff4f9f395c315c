package promo

import (
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"velvet_bite/internal/config"
	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
	"velvet_bite/internal/service"
)

const tracerName = "velvet_bite/internal/service/promo"

// storeTimeout Лимит на запись результата спина, когда запрос клиента уже завершился
const storeTimeout = 3 * time.Second

type serv struct {
	cfg       config.PromoConfig
	discounts []model.Discount
	segments  []model.Segment
	store     repository.ClientStore
	wheels    repository.WheelStateRepository
	animator  Animator
	now       func() time.Time
	tracer    trace.Tracer

	rndMtx sync.Mutex
	rnd    *rand.Rand
}

type Option func(*serv)

// WithAnimator Подменить анимацию (в тестах - мгновенная)
func WithAnimator(a Animator) Option {
	return func(s *serv) { s.animator = a }
}

// WithRandSource Детерминированный источник случайности
func WithRandSource(src rand.Source) Option {
	return func(s *serv) { s.rnd = rand.New(src) }
}

func WithClock(now func() time.Time) Option {
	return func(s *serv) { s.now = now }
}

// NewPromoService Колесо скидок: окно, спин, плашка и скидка для заказа
func NewPromoService(
	cfg config.PromoConfig,
	store repository.ClientStore,
	wheels repository.WheelStateRepository,
	opts ...Option,
) service.PromoService {
	discounts := make([]model.Discount, 0, len(cfg.Discounts()))
	for _, d := range cfg.Discounts() {
		discounts = append(discounts, model.Discount(d))
	}

	s := &serv{
		cfg:       cfg,
		discounts: discounts,
		segments:  BuildSegments(discounts, cfg.Colors()),
		store:     store,
		wheels:    wheels,
		animator:  NewTimerAnimator(),
		now:       time.Now,
		tracer:    otel.Tracer(tracerName),
		rnd:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
