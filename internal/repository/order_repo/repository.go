package order_repo

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
)

const (
	table        = "orders"
	colID        = "id"
	colName      = "name"
	colPhone     = "phone"
	colAddress   = "address"
	colItems     = "items"
	colDiscount  = "discount"
	colSubtotal  = "subtotal"
	colTotal     = "total"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewOrderRepository(dbc *pgxpool.Pool) repository.OrderRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateOrder - сохраняет заказ. Позиции пишутся в jsonb колонку
func (r *repo) CreateOrder(ctx context.Context, order *model.Order) (int, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return 0, err
	}

	query := sq.Insert(table).
		Columns(colName, colPhone, colAddress, colItems, colDiscount, colSubtotal, colTotal).
		Values(order.Name, order.Phone, order.Address, items, int(order.Discount),
			order.Subtotal.String(), order.Total.String()).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id, &order.CreatedAt)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListOrders - все заказы, новые первыми
func (r *repo) ListOrders(ctx context.Context) ([]model.Order, error) {
	query := sq.Select(colID, colName, colPhone, colAddress, colItems, colDiscount,
		colSubtotal+"::text", colTotal+"::text", colCreatedAt).
		From(table).
		OrderBy(colID + " DESC").
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

	orders := make([]model.Order, 0)
	for rows.Next() {
		var (
			o                     model.Order
			rawItems              []byte
			discount              int
			rawSubtotal, rawTotal string
		)
		err := rows.Scan(&o.ID, &o.Name, &o.Phone, &o.Address, &rawItems, &discount,
			&rawSubtotal, &rawTotal, &o.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawItems, &o.Items); err != nil {
			return nil, fmt.Errorf("order %d items: %w", o.ID, err)
		}
		o.Discount = model.Discount(discount)
		if o.Subtotal, err = decimal.NewFromString(rawSubtotal); err != nil {
			return nil, err
		}
		if o.Total, err = decimal.NewFromString(rawTotal); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
