// Package client is a typed HTTP client for the catalog API, plus a small
// state store driving list/detail/admin views.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shafvantalat/ecom/internal/models"
)

// APIError is the normalized form of any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Pagination mirrors the list endpoint's pagination block.
type Pagination struct {
	Current int64 `json:"current"`
	Pages   int64 `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int64 `json:"limit"`
}

// Filters is the client-side filter request for product listing. Zero values
// are omitted from the query string.
type Filters struct {
	Category     string
	Color        string
	Size         string
	MinPrice     string
	MaxPrice     string
	Availability string
	Featured     string
	Search       string
	Sort         string
	Page         int64
	Limit        int64
}

func (f Filters) values() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			q.Set(key, value)
		}
	}
	set("category", f.Category)
	set("color", f.Color)
	set("size", f.Size)
	set("minPrice", f.MinPrice)
	set("maxPrice", f.MaxPrice)
	set("availability", f.Availability)
	set("featured", f.Featured)
	set("search", f.Search)
	set("sort", f.Sort)
	if f.Page > 0 {
		q.Set("page", strconv.FormatInt(f.Page, 10))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.FormatInt(f.Limit, 10))
	}
	return q
}

// ProductPatch is a partial product update; nil fields are left untouched.
type ProductPatch struct {
	SKU          *string            `json:"sku,omitempty"`
	Name         *string            `json:"name,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Price        *float64           `json:"price,omitempty"`
	Images       *[]string          `json:"images,omitempty"`
	Category     *string            `json:"category,omitempty"`
	Colors       *models.StringList `json:"colors,omitempty"`
	Sizes        *models.StringList `json:"sizes,omitempty"`
	Availability *bool              `json:"availability,omitempty"`
	Stock        *int               `json:"stock,omitempty"`
	Featured     *bool              `json:"featured,omitempty"`
}

// Client talks to the catalog API. A stored token is attached to every
// request as a bearer credential.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken stores the bearer token used on subsequent requests. An empty
// token clears it, the client-side equivalent of logging out.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Token      string          `json:"token"`
	Pagination *Pagination     `json:"pagination"`
	Data       json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: message}
	}
	if decodeErr != nil {
		return nil, decodeErr
	}

	return &env, nil
}

// Products fetches a filtered, paginated product listing.
func (c *Client) Products(ctx context.Context, f Filters) ([]models.Product, Pagination, error) {
	env, err := c.do(ctx, http.MethodGet, "/products", f.values(), nil)
	if err != nil {
		return nil, Pagination{}, err
	}

	var products []models.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, Pagination{}, err
	}

	var pagination Pagination
	if env.Pagination != nil {
		pagination = *env.Pagination
	}
	return products, pagination, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return models.Product{}, err
	}

	var product models.Product
	if err := json.Unmarshal(env.Data, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Categories fetches the category values currently in use.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	env, err := c.do(ctx, http.MethodGet, "/products/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct creates a product (admin token required).
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	env, err := c.do(ctx, http.MethodPost, "/products", nil, p)
	if err != nil {
		return models.Product{}, err
	}

	var created models.Product
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return models.Product{}, err
	}
	return created, nil
}

// UpdateProduct applies a partial update (admin token required).
func (c *Client) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (models.Product, error) {
	env, err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), nil, patch)
	if err != nil {
		return models.Product{}, err
	}

	var updated models.Product
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// DeleteProduct removes a product (admin token required).
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
	return err
}

// Login exchanges admin credentials for a bearer token and stores it on the
// client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	c.SetToken(env.Token)
	return env.Token, nil
}

// Health reports whether the API and its store are reachable.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	return err
}
