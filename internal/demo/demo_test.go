package demo

import (
	"context"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dishAPI "velvet_bite/internal/api/dish"
	"velvet_bite/internal/model"
	dishServ "velvet_bite/internal/service/dish"
	"velvet_bite/pkg/dishclient"
)

// fakeClock Таймеры срабатывают только при Advance
type fakeClock struct {
	mtx    sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) func() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return func() bool {
		c.mtx.Lock()
		defer c.mtx.Unlock()
		if t.fired || t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mtx.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mtx.Unlock()

	for _, t := range due {
		t.f()
	}
}

func TestToaster_AutoDismissAt4000ms(t *testing.T) {
	clock := &fakeClock{}
	toaster := NewToaster(WithAfterFunc(clock.AfterFunc))

	toaster.Show(KindSuccess, "hello")
	require.Len(t, toaster.Toasts(), 1)

	clock.Advance(3999 * time.Millisecond)
	assert.Len(t, toaster.Toasts(), 1)

	clock.Advance(time.Millisecond)
	assert.Empty(t, toaster.Toasts())
}

func TestToaster_CloseStopsTimer(t *testing.T) {
	clock := &fakeClock{}
	toaster := NewToaster(WithAfterFunc(clock.AfterFunc))

	first := toaster.Show(KindError, "first")
	toaster.Show(KindSuccess, "second")

	assert.True(t, toaster.Close(first))
	assert.False(t, toaster.Close(first))

	toasts := toaster.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "second", toasts[0].Text)

	clock.Advance(ToastTimeout)
	assert.Empty(t, toaster.Toasts())
}

func TestToaster_AdoptFlashes(t *testing.T) {
	clock := &fakeClock{}
	toaster := NewToaster(WithAfterFunc(clock.AfterFunc))

	ids := toaster.AdoptFlashes([]Flash{
		{Category: "error", Message: "Невірний пароль"},
		{Message: "Замовлення прийнято"},
	})
	require.Len(t, ids, 2)

	toasts := toaster.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, KindError, toasts[0].Kind)
	assert.Equal(t, KindSuccess, toasts[1].Kind)

	toaster.Close(ids[1])
	clock.Advance(ToastTimeout)
	assert.Empty(t, toaster.Toasts())
}

// memDishes Каталог в памяти за настоящим сервисом и HTTP обработчиком
type memDishes struct {
	mtx    sync.Mutex
	nextID int
	dishes map[int]model.Dish
}

func newMemDishes() *memDishes {
	return &memDishes{dishes: make(map[int]model.Dish)}
}

func (m *memDishes) ListDishes(_ context.Context) ([]model.Dish, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	out := make([]model.Dish, 0, len(m.dishes))
	for _, d := range m.dishes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memDishes) GetDish(_ context.Context, id int) (*model.Dish, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	d, ok := m.dishes[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &d, nil
}

func (m *memDishes) CreateDish(_ context.Context, d *model.Dish) (int, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.nextID++
	d.ID = m.nextID
	m.dishes[d.ID] = *d
	return d.ID, nil
}

func (m *memDishes) UpdateDish(_ context.Context, d *model.Dish) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if _, ok := m.dishes[d.ID]; !ok {
		return model.ErrNotFound
	}
	m.dishes[d.ID] = *d
	return nil
}

func (m *memDishes) DeleteDish(_ context.Context, id int) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if _, ok := m.dishes[id]; !ok {
		return model.ErrNotFound
	}
	delete(m.dishes, id)
	return nil
}

func (m *memDishes) GetPrices(_ context.Context, ids []int) (map[int]decimal.Decimal, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	prices := make(map[int]decimal.Decimal, len(ids))
	for _, id := range ids {
		if d, ok := m.dishes[id]; ok {
			prices[id] = d.Price
		}
	}
	return prices, nil
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTx) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newDishServer(t *testing.T) *httptest.Server {
	t.Helper()

	h := dishAPI.NewHandler(dishAPI.HandlerDeps{Serv: dishServ.NewDishService(newMemDishes(), passTx{})})
	r := chi.NewRouter()
	r.Route("/api/dishes", func(rr chi.Router) {
		rr.Get("/", h.List)
		rr.Post("/", h.Create)
		rr.Delete("/{id}", h.Delete)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestDishDemo_CreateReloadsAndToasts(t *testing.T) {
	srv := newDishServer(t)
	clock := &fakeClock{}
	toaster := NewToaster(WithAfterFunc(clock.AfterFunc))
	demo := NewDishDemo(dishclient.New(srv.URL), toaster)
	ctx := context.Background()

	st := demo.Reload(ctx)
	require.NoError(t, st.Err)
	assert.True(t, st.Empty)

	price := decimal.RequireFromString("120.50")
	id, err := demo.Create(ctx, dishclient.NewDish{Name: "Борщ", Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	st = demo.State()
	require.Len(t, st.Dishes, 1)
	assert.Equal(t, "Борщ", st.Dishes[0].Name)
	assert.True(t, price.Equal(st.Dishes[0].Price))

	toasts := toaster.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, KindSuccess, toasts[0].Kind)
	assert.Equal(t, "Страва додана", toasts[0].Text)

	clock.Advance(3999 * time.Millisecond)
	assert.Len(t, toaster.Toasts(), 1)
	clock.Advance(time.Millisecond)
	assert.Empty(t, toaster.Toasts())
}

func TestDishDemo_CreateValidationError(t *testing.T) {
	srv := newDishServer(t)
	clock := &fakeClock{}
	toaster := NewToaster(WithAfterFunc(clock.AfterFunc))
	demo := NewDishDemo(dishclient.New(srv.URL), toaster)

	_, err := demo.Create(context.Background(), dishclient.NewDish{Description: "без назви"})
	require.Error(t, err)

	toasts := toaster.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, KindError, toasts[0].Kind)
	assert.Equal(t, "Помилка: name_required", toasts[0].Text)
}

func TestDishDemo_DeleteMissing(t *testing.T) {
	srv := newDishServer(t)
	toaster := NewToaster(WithAfterFunc((&fakeClock{}).AfterFunc))
	demo := NewDishDemo(dishclient.New(srv.URL), toaster)

	err := demo.Delete(context.Background(), 99)
	require.Error(t, err)

	toasts := toaster.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Помилка видалення: Resource not found", toasts[0].Text)
}

func TestDishDemo_DeleteReloads(t *testing.T) {
	srv := newDishServer(t)
	toaster := NewToaster(WithAfterFunc((&fakeClock{}).AfterFunc))
	demo := NewDishDemo(dishclient.New(srv.URL), toaster)
	ctx := context.Background()

	id, err := demo.Create(ctx, dishclient.NewDish{Name: "Вареники"})
	require.NoError(t, err)
	require.Len(t, demo.State().Dishes, 1)

	require.NoError(t, demo.Delete(ctx, id))
	assert.True(t, demo.State().Empty)

	toasts := toaster.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "Страва видалена", toasts[1].Text)
}

func TestDishDemo_NetworkError(t *testing.T) {
	srv := newDishServer(t)
	url := srv.URL
	srv.Close()

	toaster := NewToaster(WithAfterFunc((&fakeClock{}).AfterFunc))
	demo := NewDishDemo(dishclient.New(url), toaster)

	require.Error(t, demo.Delete(context.Background(), 1))
	toasts := toaster.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Помилка мережі при видаленні", toasts[0].Text)

	st := demo.Reload(context.Background())
	assert.Error(t, st.Err)
}
