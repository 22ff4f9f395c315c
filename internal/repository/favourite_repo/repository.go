package favourite_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
)

const (
	table        = "favourites"
	colID        = "id"
	colDishID    = "dish_id"
	colAccountID = "account_id"
	colCreatedAt = "created_at"

	foreignKeyViolation = "23503"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewFavouriteRepository(dbc *pgxpool.Pool) repository.FavouriteRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// ListFavourites - избранное аккаунта, старые первыми
func (r *repo) ListFavourites(ctx context.Context, accountID int) ([]model.Favourite, error) {
	query := sq.Select(colID, colDishID, colAccountID, colCreatedAt).
		From(table).
		Where(sq.Eq{colAccountID: accountID}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favs := make([]model.Favourite, 0)
	for rows.Next() {
		var f model.Favourite
		if err := rows.Scan(&f.ID, &f.DishID, &f.AccountID, &f.CreatedAt); err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

// AddFavourite - добавляет блюдо в избранное, возвращает ID.
// model.ErrNotFound, если нет такого блюда или аккаунта
func (r *repo) AddFavourite(ctx context.Context, fav *model.Favourite) (int, error) {
	query := sq.Insert(table).
		Columns(colDishID, colAccountID).
		Values(fav.DishID, fav.AccountID).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id, &fav.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return 0, model.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}
