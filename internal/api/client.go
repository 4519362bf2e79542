package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matthieukhl/toposhop/internal/models"
)

// TokenSource supplies the current bearer token, or an empty string when no
// session is active.
type TokenSource interface {
	Token() string
}

// Config configures a Client.
type Config struct {
	BaseURL string
	AuthURL string
	Tokens  TokenSource
	Timeout time.Duration
	Logger  *logrus.Logger
}

// Client talks to the shop backend. Catalog reads are public; mutating calls
// attach the bearer token when the token source has one.
type Client struct {
	baseURL string
	authURL string
	tokens  TokenSource
	client  *http.Client
	log     *logrus.Logger
}

// NewClient creates a shop API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		authURL: cfg.AuthURL,
		tokens:  cfg.Tokens,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do runs one JSON round trip. A nil body sends no payload, a nil out
// discards the response body. authed calls attach the bearer token when the
// token source has one; public catalog reads never send it.
func (c *Client) do(ctx context.Context, op, method, rawURL string, authed bool, body any, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	c.log.WithFields(logrus.Fields{"op": op, "method": method, "url": rawURL}).Debug("api request")

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		c.log.WithFields(logrus.Fields{"op": op, "status": resp.StatusCode}).Warn("api request failed")
		return &Error{Kind: kindForStatus(resp.StatusCode), Op: op, Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) endpoint(parts ...string) string {
	u := c.baseURL
	for _, p := range parts {
		u += "/" + url.PathEscape(p)
	}
	return u
}

// GetProducts fetches the full catalog.
func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, "get products", http.MethodGet, c.baseURL+"/products", false, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "get product", http.MethodGet, c.endpoint("products", id), false, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product. The id and timestamps come back
// server-assigned.
func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "create product", http.MethodPost, c.baseURL+"/products", true, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update to a product.
func (c *Client) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "update product", http.MethodPut, c.endpoint("products", id), true, patch, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, "delete product", http.MethodDelete, c.endpoint("products", id), true, nil, nil)
}

// UpdateStock sets a product's stock count on the backend and returns the
// updated product.
func (c *Client) UpdateStock(ctx context.Context, productID string, quantity int) (*models.Product, error) {
	body := map[string]int{"quantity": quantity}
	var product models.Product
	if err := c.do(ctx, "update stock", http.MethodPut, c.endpoint("products", productID)+"/stock", true, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetCategories fetches all categories.
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, "get categories", http.MethodGet, c.baseURL+"/categories", false, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, "create category", http.MethodPost, c.baseURL+"/categories", true, in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates a category.
func (c *Client) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, "update category", http.MethodPut, c.endpoint("categories", id), true, in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, "delete category", http.MethodDelete, c.endpoint("categories", id), true, nil, nil)
}

// GetOrders fetches all orders.
func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, "get orders", http.MethodGet, c.baseURL+"/orders", false, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, "get order", http.MethodGet, c.endpoint("orders", id), false, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder submits a new order.
func (c *Client) CreateOrder(ctx context.Context, in models.OrderInput) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, "create order", http.MethodPost, c.baseURL+"/orders", true, in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to a new status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	body := map[string]models.OrderStatus{"status": status}
	var order models.Order
	if err := c.do(ctx, "update order status", http.MethodPut, c.endpoint("orders", id)+"/status", true, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetStatistics fetches the server-computed sales report.
func (c *Client) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	var stats models.Statistics
	if err := c.do(ctx, "get statistics", http.MethodGet, c.baseURL+"/statistics", true, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SendContact sends an inquiry through the contact endpoint.
func (c *Client) SendContact(ctx context.Context, in models.ContactInput) error {
	return c.do(ctx, "send contact", http.MethodPost, c.baseURL+"/contact", false, in, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token. The backend returns the
// token under either the token or access_token key.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, "login", http.MethodPost, c.authURL+"/auth/login", false, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return "", fmt.Errorf("login response contained no token")
	}
	return token, nil
}
