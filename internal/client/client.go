package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/docelar/pedidos/internal/models"
	"github.com/docelar/pedidos/internal/validation"
)

var (
	// ErrUnauthorized возвращается на 401: сессия отсутствует или истекла.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError - ошибка API с HTTP-статусом и сообщением сервера.
// Для ответов 400 с ошибками валидации заполняется Fields.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []validation.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		return fmt.Sprintf("api error %d: %s", e.StatusCode, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client - типизированный клиент API заказов: один метод на эндпоинт,
// без повторов и без кеширования.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New создаёт HTTP-клиент API.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken задаёт токен сессии для защищённых вызовов.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register регистрирует пользователя и сохраняет токен сессии.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/user/register", email, password)
}

// Login аутентифицирует пользователя и сохраняет токен сессии.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/user/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) error {
	body := models.LoginRequest{Email: email, Password: password}

	resp, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	// Сервер возвращает токен в заголовке Authorization
	header := resp.Header.Get("Authorization")
	c.token = strings.TrimPrefix(header, "Bearer ")

	return nil
}

// CreateOrder создаёт заказ.
func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderResponse, error) {
	var order models.OrderResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Orders возвращает страницу заказов пользователя.
func (c *Client) Orders(ctx context.Context, page int) ([]*models.OrderResponse, error) {
	var orders []*models.OrderResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders", pageQuery(page), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderByID возвращает заказ по идентификатору как массив из нуля или
// одного элемента.
func (c *Client) OrderByID(ctx context.Context, id string) ([]*models.OrderResponse, error) {
	var orders []*models.OrderResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrder частично обновляет заказ.
func (c *Client) UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.OrderResponse, error) {
	var order models.OrderResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id), nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// FilterOrders возвращает страницу заказов, отфильтрованную по term.
func (c *Client) FilterOrders(ctx context.Context, term string, page int) ([]*models.OrderResponse, error) {
	query := pageQuery(page)
	if term != "" {
		query.Set("term", term)
	}

	var orders []*models.OrderResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/filter", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MonthAmount возвращает суммы продаж по месяцам.
func (c *Client) MonthAmount(ctx context.Context) ([]*models.MonthlyTotalResponse, error) {
	var totals []*models.MonthlyTotalResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/graphs/monthAmount", nil, nil, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

// doJSON выполняет запрос и декодирует успешный ответ в out.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	resp, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// do выполняет HTTP-запрос с токеном и JSON-телом.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpClient.Do(req)
}

// checkStatus переводит не-2xx ответ в ошибку с сообщением сервера.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Error   string                  `json:"error"`
		Message string                  `json:"message"`
		Errors  []validation.FieldError `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Fields = payload.Errors
		switch {
		case payload.Error != "":
			apiErr.Message = payload.Error
		case payload.Message != "":
			apiErr.Message = payload.Message
		}
	}
	if apiErr.Message == "" && len(apiErr.Fields) == 0 {
		apiErr.Message = "status " + strconv.Itoa(resp.StatusCode)
	}

	return apiErr
}

// pageQuery строит query-параметры пагинации.
func pageQuery(page int) url.Values {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	return query
}
