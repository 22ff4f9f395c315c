package favourite

import (
	"velvet_bite/internal/repository"
	"velvet_bite/internal/service"
)

type serv struct {
	repo repository.FavouriteRepository
}

// NewFavouriteService Избранные блюда аккаунтов
func NewFavouriteService(repo repository.FavouriteRepository) service.FavouriteService {
	return &serv{repo: repo}
}
