package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// HTTPClient implements Client over the server's JSON REST surface.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

type apiError struct {
	Message string `json:"message"`
}

// do issues a JSON request and decodes a JSON response into out (when out is
// non-nil). Non-2xx statuses are mapped onto the shared error taxonomy so
// callers can branch with errors.Is.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	var apiErr apiError
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, apiErr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, apiErr.Message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrValidation, apiErr.Message)
	default:
		return fmt.Errorf("%w: %s", common.ErrInternal, apiErr.Message)
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	req := map[string]string{"name": name, "email": email, "password": password}
	session := &models.Session{}
	if err := c.do(ctx, http.MethodPost, "/accounts", req, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	req := map[string]string{"email": email, "password": password}
	session := &models.Session{}
	if err := c.do(ctx, http.MethodPost, "/accounts/login", req, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *HTTPClient) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) CreateItem(ctx context.Context, title string) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodPost, "/items", map[string]string{"title": title}, &item)
	return item, err
}

func (c *HTTPClient) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodPut, "/items/"+url.PathEscape(id), patch, &item)
	return item, err
}

func (c *HTTPClient) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil)
}
