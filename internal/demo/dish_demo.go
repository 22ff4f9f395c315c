package demo

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"velvet_bite/pkg/dishclient"
)

// DishAPI Клиент каталога блюд
type DishAPI interface {
	List(ctx context.Context) ([]dishclient.Dish, error)
	Create(ctx context.Context, d dishclient.NewDish) (int, error)
	Delete(ctx context.Context, id int) error
}

// ListState Последний загруженный список. Empty = каталог пуст
type ListState struct {
	Dishes []dishclient.Dish
	Empty  bool
	Err    error
}

// DishDemo Управление каталогом: после создания и удаления список
// перезагружается, результат показывается уведомлением
type DishDemo struct {
	api     DishAPI
	toaster *Toaster

	mtx   sync.RWMutex
	state ListState
}

func NewDishDemo(api DishAPI, toaster *Toaster) *DishDemo {
	return &DishDemo{api: api, toaster: toaster}
}

func (d *DishDemo) Reload(ctx context.Context) ListState {
	dishes, err := d.api.List(ctx)

	var st ListState
	switch {
	case err != nil:
		log.Error().Err(err).Msg("load dishes")
		st.Err = err
	case len(dishes) == 0:
		st.Empty = true
	default:
		st.Dishes = dishes
	}

	d.mtx.Lock()
	d.state = st
	d.mtx.Unlock()
	return st
}

func (d *DishDemo) State() ListState {
	d.mtx.RLock()
	defer d.mtx.RUnlock()
	return d.state
}

func (d *DishDemo) Create(ctx context.Context, dish dishclient.NewDish) (int, error) {
	id, err := d.api.Create(ctx, dish)
	if err != nil {
		d.reportFailure(err, "Помилка: ", "Помилка мережі")
		return 0, err
	}

	d.toaster.Show(KindSuccess, "Страва додана")
	d.Reload(ctx)
	return id, nil
}

func (d *DishDemo) Delete(ctx context.Context, id int) error {
	if err := d.api.Delete(ctx, id); err != nil {
		d.reportFailure(err, "Помилка видалення: ", "Помилка мережі при видаленні")
		return err
	}

	d.toaster.Show(KindSuccess, "Страва видалена")
	d.Reload(ctx)
	return nil
}

func (d *DishDemo) reportFailure(err error, prefix, networkText string) {
	if apiErr, ok := dishclient.IsAPIError(err); ok {
		d.toaster.Show(KindError, prefix+apiErr.Message)
		return
	}
	log.Error().Err(err).Msg("dish api unreachable")
	d.toaster.Show(KindError, networkText)
}
