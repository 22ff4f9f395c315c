package converter

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"velvet_bite/internal/api/dto/account"
	"velvet_bite/internal/api/dto/favourite"
	"velvet_bite/internal/model"
)

const (
	codeDishIDRequired        = "dish_id_required"
	codeAccountIDMustBeNumber = "account_id_must_be_number"
)

// ToFavourite Избранное из запроса. Пустой, нулевой или нечисловой dish_id = dish_id_required
func ToFavourite(req favourite.FavouriteRequest) (model.Favourite, error) {
	dishID, ok, err := parseID(req.DishID)
	if err != nil || !ok || dishID <= 0 {
		return model.Favourite{}, model.NewValidationError(codeDishIDRequired)
	}

	fav := model.Favourite{DishID: dishID}

	accountID, ok, err := parseID(req.AccountID)
	if err != nil {
		return model.Favourite{}, model.NewValidationError(codeAccountIDMustBeNumber)
	}
	if ok {
		fav.AccountID = &accountID
	}
	return fav, nil
}

func ToFavouriteListResponse(favs []model.Favourite) []favourite.FavouriteResponse {
	result := make([]favourite.FavouriteResponse, len(favs))
	for i, f := range favs {
		result[i] = favourite.FavouriteResponse{
			ID:        f.ID,
			DishID:    f.DishID,
			AccountID: f.AccountID,
			CreatedAt: f.CreatedAt,
		}
	}
	return result
}

func ToAccountListResponse(accounts []model.Account) []account.AccountResponse {
	result := make([]account.AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = account.AccountResponse{
			ID:        a.ID,
			Name:      a.Name,
			Email:     a.Email,
			CreatedAt: a.CreatedAt,
		}
	}
	return result
}

// parseID Целое число или строка с ним. ok=false для отсутствующего поля и null
func parseID(raw json.RawMessage) (int, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return 0, false, nil
		}
	}

	id, err := strconv.Atoi(text)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
