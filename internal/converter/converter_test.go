package converter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velvet_bite/internal/api/dto/dish"
	"velvet_bite/internal/api/dto/favourite"
	"velvet_bite/internal/api/dto/order"
	"velvet_bite/internal/model"
)

func TestToDishPrice(t *testing.T) {
	cases := []struct {
		raw   string
		want  string
		valid bool
	}{
		{raw: `120.5`, want: "120.5", valid: true},
		{raw: `"99.90"`, want: "99.9", valid: true},
		{raw: `null`, want: "0", valid: true},
		{raw: ``, want: "0", valid: true},
		{raw: `"дорого"`, valid: false},
		{raw: `true`, valid: false},
		{raw: `-5`, valid: false},
	}
	for _, tc := range cases {
		name := "Борщ"
		d, err := ToDish(dish.DishRequest{Name: &name, Price: json.RawMessage(tc.raw)})
		if !tc.valid {
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr, tc.raw)
			assert.Equal(t, "price_must_be_number", verr.Code)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, d.Price.String(), tc.raw)
	}
}

func TestToDishPatchKeepsAbsentFields(t *testing.T) {
	var req dish.DishRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description":"нове"}`), &req))

	patch, err := ToDishPatch(req)
	require.NoError(t, err)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Price)
	require.NotNil(t, patch.Description)
	assert.Equal(t, "нове", *patch.Description)
}

func TestToOrderItems(t *testing.T) {
	var req order.OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"address": "Київ",
		"items": [{"dish_id": 1, "qty": 2}, [3, 4], [5], "junk", {"dish_id": "x"}]
	}`), &req))

	o, err := ToOrder(req)
	require.NoError(t, err)
	assert.Equal(t, []model.OrderItem{
		{DishID: 1, Qty: 2},
		{DishID: 3, Qty: 4},
		{DishID: 5, Qty: 1},
	}, o.Items)
}

func TestToOrderRejectsNonArrayItems(t *testing.T) {
	var req order.OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"address": "Київ", "items": {"dish_id": 1}}`), &req))

	_, err := ToOrder(req)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items_must_be_array", verr.Code)
}

func TestToFavourite(t *testing.T) {
	cases := []struct {
		body    string
		dishID  int
		account *int
		code    string
	}{
		{body: `{"dish_id": 3}`, dishID: 3},
		{body: `{"dish_id": "7", "account_id": 2}`, dishID: 7, account: intPtr(2)},
		{body: `{"dish_id": 4, "account_id": null}`, dishID: 4},
		{body: `{}`, code: "dish_id_required"},
		{body: `{"dish_id": 0}`, code: "dish_id_required"},
		{body: `{"dish_id": ""}`, code: "dish_id_required"},
		{body: `{"dish_id": "борщ"}`, code: "dish_id_required"},
		{body: `{"dish_id": 3, "account_id": "x"}`, code: "account_id_must_be_number"},
	}
	for _, tc := range cases {
		var req favourite.FavouriteRequest
		require.NoError(t, json.Unmarshal([]byte(tc.body), &req), tc.body)

		fav, err := ToFavourite(req)
		if tc.code != "" {
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr, tc.body)
			assert.Equal(t, tc.code, verr.Code, tc.body)
			continue
		}
		require.NoError(t, err, tc.body)
		assert.Equal(t, tc.dishID, fav.DishID, tc.body)
		assert.Equal(t, tc.account, fav.AccountID, tc.body)
	}
}

func intPtr(v int) *int { return &v }
