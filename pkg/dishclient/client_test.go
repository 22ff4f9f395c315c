package dishclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message first", `{"error":"name_required","message":"Name is required"}`, "Name is required"},
		{"error when no message", `{"error":"not_found"}`, "not_found"},
		{"empty message falls to error", `{"error":"bad","message":""}`, "bad"},
		{"raw text", "upstream exploded", "upstream exploded"},
		{"json without fields", `{ "detail": 1 }`, `{"detail":1}`},
		{"json string", `"oops"`, `"oops"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorMessage([]byte(tc.body)))
		})
	}
}

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dishes", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"Borscht","price":120.5},{"id":2,"name":"Varenyky","price":"95"}]`))
	}))
	defer srv.Close()

	dishes, err := New(srv.URL).List(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, "Borscht", dishes[0].Name)
	assert.True(t, decimal.RequireFromString("120.5").Equal(dishes[0].Price))
	assert.True(t, decimal.NewFromInt(95).Equal(dishes[1].Price))
}

func TestClient_ListNotArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	dishes, err := New(srv.URL).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dishes)
}

func TestClient_ListStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL).List(context.Background())
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
}

func TestClient_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "secret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Borscht", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	price := decimal.RequireFromString("120.50")
	id, err := New(srv.URL, WithBasicAuth("admin", "secret")).
		Create(context.Background(), NewDish{Name: "Borscht", Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestClient_CreateRequires201(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Create(context.Background(), NewDish{Name: "Borscht"})
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, apiErr.Status)
}

func TestClient_DeleteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dishes/42", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"Resource not found"}`))
	}))
	defer srv.Close()

	err := New(srv.URL).Delete(context.Background(), 42)
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Resource not found", apiErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url).Delete(context.Background(), 1)
	require.Error(t, err)
	_, ok := IsAPIError(err)
	assert.False(t, ok)
}
