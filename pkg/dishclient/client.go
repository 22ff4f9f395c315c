package dishclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBody = 64 << 10

type Dish struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Ingredients string          `json:"ingredients"`
	Calories    *int            `json:"calories,omitempty"`
}

// NewDish Тело создания блюда
type NewDish struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       string           `json:"image,omitempty"`
	Ingredients string           `json:"ingredients,omitempty"`
	Calories    *int             `json:"calories,omitempty"`
}

// APIError Ответ сервера с неуспешным статусом
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dish api: %d %s", e.Status, e.Message)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBasicAuth Учетные данные администратора для изменения каталога
func WithBasicAuth(user, password string) Option {
	return func(c *Client) {
		c.user = user
		c.password = password
	}
}

type Client struct {
	baseURL  string
	http     *http.Client
	user     string
	password string
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List Список блюд. Ответ не массивом считается пустым списком
func (c *Client) List(ctx context.Context) ([]Dish, error) {
	res, err := c.do(ctx, http.MethodGet, "/api/dishes", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode dish list: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []Dish{}, nil
	}

	var dishes []Dish
	if err := json.Unmarshal(raw, &dishes); err != nil {
		return nil, fmt.Errorf("decode dish list: %w", err)
	}
	return dishes, nil
}

// Create Создает блюдо. Успех только при 201
func (c *Client) Create(ctx context.Context, d NewDish) (int, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return 0, fmt.Errorf("encode dish: %w", err)
	}

	res, err := c.do(ctx, http.MethodPost, "/api/dishes", body)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		return 0, readAPIError(res)
	}

	var created struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("decode created dish: %w", err)
	}
	return created.ID, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	res, err := c.do(ctx, http.MethodDelete, "/api/dishes/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return readAPIError(res)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return res, nil
}

func readAPIError(res *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if err != nil {
		return &APIError{Status: res.StatusCode, Message: res.Status}
	}
	return &APIError{Status: res.StatusCode, Message: ErrorMessage(raw)}
}

// ErrorMessage Текст ошибки из тела ответа: JSON message, затем JSON error,
// затем сырой текст. JSON без этих полей возвращается строкой как есть
func ErrorMessage(body []byte) string {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(body)
	}

	if obj, ok := parsed.(map[string]any); ok {
		for _, key := range []string{"message", "error"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return string(body)
	}
	return buf.String()
}

// IsAPIError Ответ сервера, а не сетевой сбой
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
