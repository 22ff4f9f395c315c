package service

import (
	"context"
	"net/http"

	"velvet_bite/internal/model"
)

type PromoService interface {
	OpenModal(ctx context.Context, clientID string, force bool) (*model.Modal, bool, error)
	Spin(ctx context.Context, clientID string) (*model.SpinOutcome, error)
	SpinState(ctx context.Context, clientID string) model.PromoWheelState
	CloseModal(ctx context.Context, clientID string) error
	Badge(ctx context.Context, clientID, path string) (*model.Badge, bool)
	OrderDiscount(ctx context.Context, clientID string) model.OrderDiscount
	WheelSVG() (string, error)
}

// OfflineWorker - network-first кэш перед origin сайта
type OfflineWorker interface {
	http.Handler
	Install(ctx context.Context) error
	Activate(ctx context.Context) error
	State() model.WorkerState
	Supersede(ctx context.Context) error
	Terminate(ctx context.Context) error
}

type DishService interface {
	List(ctx context.Context) ([]model.Dish, error)
	Get(ctx context.Context, id int) (*model.Dish, error)
	Create(ctx context.Context, dish model.Dish) (int, error)
	Update(ctx context.Context, id int, patch model.DishPatch) (*model.Dish, error)
	Delete(ctx context.Context, id int) error
}

type OrderService interface {
	Create(ctx context.Context, clientID string, order model.Order) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
}

type FavouriteService interface {
	List(ctx context.Context, accountID int) ([]model.Favourite, error)
	Add(ctx context.Context, fav model.Favourite) (int, error)
}

type AccountService interface {
	List(ctx context.Context) ([]model.Account, error)
}

type ThemeService interface {
	Get(ctx context.Context, clientID string) model.Theme
	Set(ctx context.Context, clientID string, theme model.Theme) error
	Toggle(ctx context.Context, clientID string) (model.Theme, error)
}
