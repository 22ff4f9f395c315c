package dish

import (
	"context"
	"strings"

	"velvet_bite/internal/model"
)

const codeNameRequired = "name_required"

func (s *serv) List(ctx context.Context) ([]model.Dish, error) {
	return s.repo.ListDishes(ctx)
}

func (s *serv) Get(ctx context.Context, id int) (*model.Dish, error) {
	return s.repo.GetDish(ctx, id)
}

// Create Новое блюдо. Имя обязательно
func (s *serv) Create(ctx context.Context, dish model.Dish) (int, error) {
	dish.Name = strings.TrimSpace(dish.Name)
	if dish.Name == "" {
		return 0, model.NewValidationError(codeNameRequired)
	}
	return s.repo.CreateDish(ctx, &dish)
}

func (s *serv) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteDish(ctx, id)
}
