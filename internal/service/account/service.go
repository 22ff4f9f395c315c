package account

import (
	"context"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
	"velvet_bite/internal/service"
)

type serv struct {
	repo repository.AccountRepository
}

func NewAccountService(repo repository.AccountRepository) service.AccountService {
	return &serv{repo: repo}
}

func (s *serv) List(ctx context.Context) ([]model.Account, error) {
	return s.repo.ListAccounts(ctx)
}
