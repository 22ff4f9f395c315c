package dish

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"velvet_bite/internal/repository"
	"velvet_bite/internal/service"
)

type serv struct {
	repo      repository.DishRepository
	txManager trm.Manager
}

// NewDishService CRUD каталога блюд
func NewDishService(repo repository.DishRepository, txManager trm.Manager) service.DishService {
	return &serv{
		repo:      repo,
		txManager: txManager,
	}
}
