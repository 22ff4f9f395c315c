package favourite

import (
	"context"

	"velvet_bite/internal/model"
)

const codeDishIDRequired = "dish_id_required"

func (s *serv) List(ctx context.Context, accountID int) ([]model.Favourite, error) {
	if accountID <= 0 {
		return []model.Favourite{}, nil
	}
	return s.repo.ListFavourites(ctx, accountID)
}

// Add Блюдо в избранное. Без аккаунта запись сохраняется с пустым account_id
func (s *serv) Add(ctx context.Context, fav model.Favourite) (int, error) {
	if fav.DishID <= 0 {
		return 0, model.NewValidationError(codeDishIDRequired)
	}
	if fav.AccountID != nil && *fav.AccountID <= 0 {
		return 0, model.ErrNotFound
	}
	return s.repo.AddFavourite(ctx, &fav)
}
