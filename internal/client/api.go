package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/service"
)

// APIError is a non-zero business code from the server envelope.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Msg)
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type pageEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		Page      int   `json:"page"`
		PageSize  int   `json:"page_size"`
		Total     int64 `json:"total"`
		TotalPage int64 `json:"total_page"`
	} `json:"pagination"`
}

// API is the server surface the login flow needs.
type API interface {
	RequestWebsiteLogin(ctx context.Context, clientID string) (*service.WebsiteLoginRequest, error)
	LoginStatus(ctx context.Context, tempToken string) (*service.LoginStatusResult, error)
	LoginWithWebApp(ctx context.Context, initData string) (*WebAppLoginResult, error)
}

// WebAppLoginResult is the Mini App login response payload.
type WebAppLoginResult struct {
	User           *models.User `json:"user"`
	Token          string       `json:"token"`
	TokenExpiresAt time.Time    `json:"token_expires_at"`
}

// HTTPClient talks to the admin API over HTTP.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient creates an API client against the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches the bearer token used for admin endpoints.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.StatusCode != 0 {
		return &APIError{Code: env.StatusCode, Msg: env.Msg}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (c *HTTPClient) doPage(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env pageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.StatusCode != 0 {
		return &APIError{Code: env.StatusCode, Msg: env.Msg}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// RequestWebsiteLogin asks the server to open a login session.
func (c *HTTPClient) RequestWebsiteLogin(ctx context.Context, clientID string) (*service.WebsiteLoginRequest, error) {
	var result service.WebsiteLoginRequest
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login-request", nil, map[string]string{"client_id": clientID}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// LoginStatus reads the current state of a login session.
func (c *HTTPClient) LoginStatus(ctx context.Context, tempToken string) (*service.LoginStatusResult, error) {
	query := url.Values{}
	query.Set("token", tempToken)
	var result service.LoginStatusResult
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/login-status", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoginWithWebApp signs in with Telegram Mini App init data.
func (c *HTTPClient) LoginWithWebApp(ctx context.Context, initData string) (*WebAppLoginResult, error) {
	var result WebAppLoginResult
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/telegram-webapp", nil, map[string]string{"init_data": initData}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the signed-in admin account.
func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DashboardStats fetches the dashboard counters.
func (c *HTTPClient) DashboardStats(ctx context.Context) (*service.DashboardStats, error) {
	var stats service.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/dashboard/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Orders fetches an order page.
func (c *HTTPClient) Orders(ctx context.Context, query url.Values) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doPage(ctx, "/api/v1/admin/orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// TodayOrders fetches orders created since local midnight.
func (c *HTTPClient) TodayOrders(ctx context.Context, query url.Values) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doPage(ctx, "/api/v1/admin/orders/today", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Products fetches a product page.
func (c *HTTPClient) Products(ctx context.Context, query url.Values) ([]models.Product, error) {
	var products []models.Product
	if err := c.doPage(ctx, "/api/v1/admin/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}
