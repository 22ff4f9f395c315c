package order

import (
	"context"
	"errors"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
	"velvet_bite/internal/repository/client_repo"
)

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTx) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockDishRepo struct {
	mock.Mock
	repository.DishRepository
}

func (m *mockDishRepo) GetPrices(ctx context.Context, ids []int) (map[int]decimal.Decimal, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int]decimal.Decimal), args.Error(1)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, order *model.Order) (int, error) {
	args := m.Called(ctx, order)
	return args.Int(0), args.Error(1)
}

func (m *mockOrderRepo) ListOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Order), args.Error(1)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string, string) model.StorageResult[string] {
	return model.Failed[string](errors.New("redis: connection refused"))
}

func (failingStore) Set(context.Context, string, string, string) error {
	return errors.New("redis: connection refused")
}

func TestCreateRequiresAddress(t *testing.T) {
	s := NewOrderService(&mockDishRepo{}, &mockOrderRepo{}, client_repo.NewMemoryClientStore(), passTx{})

	_, err := s.Create(context.Background(), "c1", model.Order{Address: " "})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "address_required", verr.Code)
}

func TestCreateAppliesStoredDiscount(t *testing.T) {
	ctx := context.Background()
	store := client_repo.NewMemoryClientStore()
	require.NoError(t, store.Set(ctx, "c1", model.KeyActiveDiscount, "15%"))

	dishes := &mockDishRepo{}
	dishes.On("GetPrices", mock.Anything, []int{1, 2, 99}).Return(map[int]decimal.Decimal{
		1: decimal.RequireFromString("120.00"),
		2: decimal.RequireFromString("45.50"),
	}, nil)
	orders := &mockOrderRepo{}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(11, nil)

	s := NewOrderService(dishes, orders, store, passTx{})
	got, err := s.Create(ctx, "c1", model.Order{
		Address: "вул. Хрещатик, 1",
		Items: []model.OrderItem{
			{DishID: 1, Qty: 2},
			{DishID: 2},
			{DishID: 99, Qty: 3},
			{DishID: 0, Qty: 5},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 11, got.ID)
	assert.Equal(t, "Guest", got.Name)
	assert.Equal(t, model.Discount(15), got.Discount)
	assert.Len(t, got.Items, 3)
	assert.Equal(t, 1, got.Items[1].Qty)
	assert.Equal(t, "285.5", got.Subtotal.String())
	assert.Equal(t, "242.68", got.Total.StringFixed(2))
	orders.AssertExpectations(t)
}

func TestCreateWithoutDiscountWhenStoreFails(t *testing.T) {
	dishes := &mockDishRepo{}
	dishes.On("GetPrices", mock.Anything, []int{1}).Return(map[int]decimal.Decimal{
		1: decimal.RequireFromString("100"),
	}, nil)
	orders := &mockOrderRepo{}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(1, nil)

	s := NewOrderService(dishes, orders, failingStore{}, passTx{})
	got, err := s.Create(context.Background(), "c1", model.Order{
		Name:    "Оксана",
		Address: "Львів",
		Items:   []model.OrderItem{{DishID: 1, Qty: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.Discount(0), got.Discount)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(100)))
}

func TestCreateEmptyOrderSkipsPriceLookup(t *testing.T) {
	dishes := &mockDishRepo{}
	orders := &mockOrderRepo{}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(2, nil)

	s := NewOrderService(dishes, orders, client_repo.NewMemoryClientStore(), passTx{})
	got, err := s.Create(context.Background(), "c1", model.Order{Address: "Одеса"})
	require.NoError(t, err)
	assert.True(t, got.Total.IsZero())
	dishes.AssertNotCalled(t, "GetPrices", mock.Anything, mock.Anything)
}

func TestCreateIgnoresUnknownStoredDiscount(t *testing.T) {
	ctx := context.Background()
	store := client_repo.NewMemoryClientStore()
	require.NoError(t, store.Set(ctx, "c1", model.KeyActiveDiscount, "33%"))

	dishes := &mockDishRepo{}
	dishes.On("GetPrices", mock.Anything, []int{1}).Return(map[int]decimal.Decimal{
		1: decimal.RequireFromString("100"),
	}, nil)
	orders := &mockOrderRepo{}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(3, nil)

	order := model.Order{Address: "Одеса", Items: []model.OrderItem{{DishID: 1, Qty: 1}}}

	got, err := NewOrderService(dishes, orders, store, passTx{}).Create(ctx, "c1", order)
	require.NoError(t, err)
	assert.Equal(t, model.Discount(0), got.Discount)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(100)))

	s := NewOrderService(dishes, orders, store, passTx{}, WithAllowedDiscounts([]model.Discount{33}))
	got, err = s.Create(ctx, "c1", order)
	require.NoError(t, err)
	assert.Equal(t, model.Discount(33), got.Discount)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(67)))
}
