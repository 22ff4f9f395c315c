package dish

import (
	"context"
	"strings"

	"velvet_bite/internal/model"
)

// Update Слияние изменений с существующим блюдом.
// Пустое имя в изменениях не затирает текущее
func (s *serv) Update(ctx context.Context, id int, patch model.DishPatch) (*model.Dish, error) {
	var merged *model.Dish

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetDish(txCtx, id)
		if err != nil {
			return err
		}

		merged = applyPatch(*existing, patch)
		if merged.Name == "" {
			return model.NewValidationError(codeNameRequired)
		}
		return s.repo.UpdateDish(txCtx, merged)
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func applyPatch(d model.Dish, p model.DishPatch) *model.Dish {
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		d.Name = strings.TrimSpace(*p.Name)
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Image != nil {
		d.Image = *p.Image
	}
	if p.Ingredients != nil {
		d.Ingredients = *p.Ingredients
	}
	if p.Calories != nil {
		c := *p.Calories
		d.Calories = &c
	}
	return &d
}
