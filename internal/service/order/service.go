package order

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
	"velvet_bite/internal/service"
)

type serv struct {
	dishRepo  repository.DishRepository
	orderRepo repository.OrderRepository
	store     repository.ClientStore
	txManager trm.Manager
	allowed   []model.Discount
}

type Option func(*serv)

// WithAllowedDiscounts Скидки, которые может дать колесо. Остальные значения в хранилище игнорируются
func WithAllowedDiscounts(ds []model.Discount) Option {
	return func(s *serv) { s.allowed = ds }
}

// NewOrderService Заказы. Цены берутся из каталога, скидка из хранилища клиента
func NewOrderService(
	dishRepo repository.DishRepository,
	orderRepo repository.OrderRepository,
	store repository.ClientStore,
	txManager trm.Manager,
	opts ...Option,
) service.OrderService {
	s := &serv{
		dishRepo:  dishRepo,
		orderRepo: orderRepo,
		store:     store,
		txManager: txManager,
		allowed:   model.DefaultDiscounts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
