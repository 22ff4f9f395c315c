package dish

import (
	"context"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"velvet_bite/internal/model"
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
}

func (m *mockDishRepo) ListDishes(ctx context.Context) ([]model.Dish, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Dish), args.Error(1)
}

func (m *mockDishRepo) GetDish(ctx context.Context, id int) (*model.Dish, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*model.Dish)
	return d, args.Error(1)
}

func (m *mockDishRepo) CreateDish(ctx context.Context, dish *model.Dish) (int, error) {
	args := m.Called(ctx, dish)
	return args.Int(0), args.Error(1)
}

func (m *mockDishRepo) UpdateDish(ctx context.Context, dish *model.Dish) error {
	return m.Called(ctx, dish).Error(0)
}

func (m *mockDishRepo) DeleteDish(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDishRepo) GetPrices(ctx context.Context, ids []int) (map[int]decimal.Decimal, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int]decimal.Decimal), args.Error(1)
}

func TestCreateRequiresName(t *testing.T) {
	repo := &mockDishRepo{}
	s := NewDishService(repo, passTx{})

	_, err := s.Create(context.Background(), model.Dish{Name: "   "})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name_required", verr.Code)
	assert.ErrorIs(t, err, model.ErrValidation)
	repo.AssertNotCalled(t, "CreateDish", mock.Anything, mock.Anything)
}

func TestCreate(t *testing.T) {
	repo := &mockDishRepo{}
	repo.On("CreateDish", mock.Anything, mock.MatchedBy(func(d *model.Dish) bool {
		return d.Name == "Борщ" && d.Price.Equal(decimal.RequireFromString("120.50"))
	})).Return(7, nil)
	s := NewDishService(repo, passTx{})

	id, err := s.Create(context.Background(), model.Dish{Name: " Борщ ", Price: decimal.RequireFromString("120.50")})
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	repo.AssertExpectations(t)
}

func TestUpdateMergesPatch(t *testing.T) {
	calories := 450
	repo := &mockDishRepo{}
	repo.On("GetDish", mock.Anything, 3).Return(&model.Dish{
		ID:          3,
		Name:        "Вареники",
		Description: "з вишнею",
		Price:       decimal.RequireFromString("95"),
		Image:       "/static/images/vareniki.jpg",
	}, nil)
	repo.On("UpdateDish", mock.Anything, mock.Anything).Return(nil)
	s := NewDishService(repo, passTx{})

	empty := ""
	price := decimal.RequireFromString("110.00")
	got, err := s.Update(context.Background(), 3, model.DishPatch{
		Name:     &empty,
		Price:    &price,
		Calories: &calories,
	})
	require.NoError(t, err)

	assert.Equal(t, "Вареники", got.Name)
	assert.Equal(t, "з вишнею", got.Description)
	assert.True(t, got.Price.Equal(price))
	require.NotNil(t, got.Calories)
	assert.Equal(t, 450, *got.Calories)
	repo.AssertCalled(t, "UpdateDish", mock.Anything, got)
}

func TestUpdateMissingDish(t *testing.T) {
	repo := &mockDishRepo{}
	repo.On("GetDish", mock.Anything, 404).Return(nil, model.ErrNotFound)
	s := NewDishService(repo, passTx{})

	_, err := s.Update(context.Background(), 404, model.DishPatch{})
	assert.ErrorIs(t, err, model.ErrNotFound)
	repo.AssertNotCalled(t, "UpdateDish", mock.Anything, mock.Anything)
}

func TestDeleteMissingDish(t *testing.T) {
	repo := &mockDishRepo{}
	repo.On("DeleteDish", mock.Anything, 9).Return(model.ErrNotFound)
	s := NewDishService(repo, passTx{})

	assert.ErrorIs(t, s.Delete(context.Background(), 9), model.ErrNotFound)
}
