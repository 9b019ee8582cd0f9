package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"catalog-sync/core/transport"

	"go.uber.org/zap"
)

// Client talks to the remote commerce API. All calls go through the shared
// transport, which applies rate limiting, retries and signing.
type Client struct {
	cfg       Config
	transport *transport.Transport
	logger    *zap.Logger
}

// NewClient creates a remote API client.
func NewClient(cfg Config, tr *transport.Transport, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, transport: tr, logger: logger}
}

func (c *Client) endpoint(path string) string {
	return c.cfg.BaseURL + c.cfg.APIPrefix + path
}

func (c *Client) auth() url.Values {
	return url.Values{
		"consumer_key":    {c.cfg.ConsumerKey},
		"consumer_secret": {c.cfg.ConsumerSecret},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	q := c.auth()
	for key, vals := range query {
		q[key] = vals
	}
	resp, err := c.transport.Do(ctx, &transport.Request{
		Method: method,
		URL:    c.endpoint(path),
		Query:  q,
		Body:   body,
	})
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, dest); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// GetBySKU looks up a product by SKU. It returns (nil, nil) when no product
// carries the SKU.
func (c *Client) GetBySKU(ctx context.Context, sku string) (*Item, error) {
	var items []Item
	query := url.Values{"sku": {sku}}
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// Create creates a product.
func (c *Client) Create(ctx context.Context, payload ProductPayload) (*Item, error) {
	var created Item
	if err := c.do(ctx, http.MethodPost, "/products", nil, payload, &created); err != nil {
		return nil, err
	}
	c.logger.Debug("created remote product",
		zap.String("sku", payload.SKU), zap.Int64("id", created.ID))
	return &created, nil
}

// Update updates an existing product by remote ID.
func (c *Client) Update(ctx context.Context, id int64, payload ProductPayload) (*Item, error) {
	var updated Item
	path := "/products/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPut, path, nil, payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// BatchUpdate applies a batch of stock/price updates in one call.
func (c *Client) BatchUpdate(ctx context.Context, items []BatchItem) error {
	if len(items) == 0 {
		return nil
	}
	body := map[string]any{"update": items}
	if err := c.do(ctx, http.MethodPost, "/products/batch", nil, body, nil); err != nil {
		return err
	}
	c.logger.Debug("batch updated remote products", zap.Int("count", len(items)))
	return nil
}

// ListCategories returns every remote category, walking the paginated
// listing until a short page. The remote orders pages consistently, which
// keeps repeated listings stable.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	var all []Category
	for page := 1; ; page++ {
		query := url.Values{
			"per_page": {strconv.Itoa(pageSize)},
			"page":     {strconv.Itoa(page)},
		}
		var batch []Category
		if err := c.do(ctx, http.MethodGet, "/products/categories", query, nil, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			return all, nil
		}
	}
}

// CreateCategory creates a category under the given parent. Parent zero
// creates a root category.
func (c *Client) CreateCategory(ctx context.Context, name string, parent int64) (*Category, error) {
	body := map[string]any{"name": name, "parent": parent}
	var created Category
	if err := c.do(ctx, http.MethodPost, "/products/categories", nil, body, &created); err != nil {
		return nil, err
	}
	c.logger.Info("created remote category",
		zap.String("name", name), zap.Int64("parent", parent), zap.Int64("id", created.ID))
	return &created, nil
}
