package dish_repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
)

const (
	table          = "dishes"
	colID          = "id"
	colName        = "name"
	colDescription = "description"
	colPrice       = "price"
	colImage       = "image"
	colIngredients = "ingredients"
	colCalories    = "calories"
)

// цена читается текстом, чтобы не терять точность numeric
var selectColumns = []string{colID, colName, colDescription, colPrice + "::text", colImage, colIngredients, colCalories}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewDishRepository(dbc *pgxpool.Pool) repository.DishRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// ListDishes - все блюда по возрастанию ID
func (r *repo) ListDishes(ctx context.Context) ([]model.Dish, error) {
	query := sq.Select(selectColumns...).
		From(table).
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

	dishes := make([]model.Dish, 0)
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, *d)
	}
	return dishes, rows.Err()
}

// GetDish - блюдо по ID. model.ErrNotFound если записи нет
func (r *repo) GetDish(ctx context.Context, id int) (*model.Dish, error) {
	query := sq.Select(selectColumns...).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	d, err := scanDish(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// CreateDish - создает блюдо, возвращает ID
func (r *repo) CreateDish(ctx context.Context, dish *model.Dish) (int, error) {
	query := sq.Insert(table).
		Columns(colName, colDescription, colPrice, colImage, colIngredients, colCalories).
		Values(dish.Name, dish.Description, dish.Price.String(), dish.Image, dish.Ingredients, dish.Calories).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateDish - перезаписывает все поля блюда
func (r *repo) UpdateDish(ctx context.Context, dish *model.Dish) error {
	query := sq.Update(table).
		Set(colName, dish.Name).
		Set(colDescription, dish.Description).
		Set(colPrice, dish.Price.String()).
		Set(colImage, dish.Image).
		Set(colIngredients, dish.Ingredients).
		Set(colCalories, dish.Calories).
		Where(sq.Eq{colID: dish.ID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteDish - удаляет блюдо. model.ErrNotFound если удалять нечего
func (r *repo) DeleteDish(ctx context.Context, id int) error {
	query := sq.Delete(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// GetPrices - цены блюд по списку ID. Отсутствующих ID в ответе нет
func (r *repo) GetPrices(ctx context.Context, ids []int) (map[int]decimal.Decimal, error) {
	prices := make(map[int]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	query := sq.Select(colID, colPrice+"::text").
		From(table).
		Where(sq.Eq{colID: ids}).
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

	for rows.Next() {
		var (
			id  int
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("dish %d price: %w", id, err)
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

func scanDish(row pgx.Row) (*model.Dish, error) {
	var (
		d        model.Dish
		rawPrice string
	)
	err := row.Scan(&d.ID, &d.Name, &d.Description, &rawPrice, &d.Image, &d.Ingredients, &d.Calories)
	if err != nil {
		return nil, err
	}
	d.Price, err = decimal.NewFromString(rawPrice)
	if err != nil {
		return nil, fmt.Errorf("dish %d price: %w", d.ID, err)
	}
	return &d, nil
}
