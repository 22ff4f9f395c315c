package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"velvet_bite/internal/model"
)

type DishRepository interface {
	ListDishes(ctx context.Context) ([]model.Dish, error)
	GetDish(ctx context.Context, id int) (*model.Dish, error)
	CreateDish(ctx context.Context, dish *model.Dish) (id int, err error)
	UpdateDish(ctx context.Context, dish *model.Dish) error
	DeleteDish(ctx context.Context, id int) error

	GetPrices(ctx context.Context, ids []int) (map[int]decimal.Decimal, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) (id int, err error)
	ListOrders(ctx context.Context) ([]model.Order, error)
}

type FavouriteRepository interface {
	ListFavourites(ctx context.Context, accountID int) ([]model.Favourite, error)
	AddFavourite(ctx context.Context, fav *model.Favourite) (id int, err error)
}

type AccountRepository interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
}

// ClientStore - клиентское key-value хранилище (аналог localStorage).
// Ошибки чтения не пробрасываются паникой, а возвращаются в StorageResult
type ClientStore interface {
	Get(ctx context.Context, clientID, key string) model.StorageResult[string]
	Set(ctx context.Context, clientID, key, value string) error
}

// CacheStorage - набор именованных бакетов offline-кэша
type CacheStorage interface {
	Open(ctx context.Context, name string) (CacheBucket, error)
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) (bool, error)
}

type CacheBucket interface {
	Name() string
	Put(ctx context.Context, key string, resp *model.CachedResponse) error
	PutAll(ctx context.Context, entries map[string]*model.CachedResponse) error
	Match(ctx context.Context, key string) model.StorageResult[*model.CachedResponse]
}

// WheelStateRepository - открытые окна и спины в процессе анимации по клиентам
type WheelStateRepository interface {
	Wheel(clientID string) model.ClientWheel
	OpenModal(clientID string)
	CloseModal(clientID string)
	BeginSpin(clientID string, plan func(from float64) model.SpinSession) (model.SpinSession, error)
	FinishSpin(clientID string, restAngle float64)
}
