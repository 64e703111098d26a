// internal/domain/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// ErrNotFound is returned when the dashboard API has no such tenant or
// product
var ErrNotFound = errors.New("catalog: not found")

// Client fetches tenant content from the remote dashboard API. Responses
// are cached in Redis for a short TTL; cache failures degrade to a direct
// fetch and are never surfaced.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	cacheTTL    time.Duration
	redisClient *redis.Client
	log         *logrus.Entry
}

// NewClient creates a dashboard API client
func NewClient(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Dashboard.Timeout},
		baseURL:     cfg.Dashboard.BaseURL,
		apiKey:      cfg.Dashboard.APIKey,
		cacheTTL:    cfg.Dashboard.CacheTTL,
		redisClient: redisClient,
		log:         logger.WithField("component", "catalog"),
	}
}

// GetCompany retrieves a tenant's public profile
func (c *Client) GetCompany(ctx context.Context, tenantSlug string) (*Company, error) {
	var company Company
	key := fmt.Sprintf("dashboard:%s:company", tenantSlug)
	path := fmt.Sprintf("/companies/%s", tenantSlug)
	if err := c.cached(ctx, key, path, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// ListProducts retrieves the tenant's full product list
func (c *Client) ListProducts(ctx context.Context, tenantSlug string) ([]Product, error) {
	var products []Product
	key := fmt.Sprintf("dashboard:%s:products", tenantSlug)
	path := fmt.Sprintf("/companies/%s/products", tenantSlug)
	if err := c.cached(ctx, key, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a single product by its slug
func (c *Client) GetProduct(ctx context.Context, tenantSlug, productSlug string) (*Product, error) {
	products, err := c.ListProducts(ctx, tenantSlug)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Slug == productSlug {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

// ListReviews retrieves the tenant's customer reviews
func (c *Client) ListReviews(ctx context.Context, tenantSlug string) ([]Review, error) {
	var reviews []Review
	key := fmt.Sprintf("dashboard:%s:reviews", tenantSlug)
	path := fmt.Sprintf("/companies/%s/reviews", tenantSlug)
	if err := c.cached(ctx, key, path, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListFAQs retrieves the tenant's FAQ entries
func (c *Client) ListFAQs(ctx context.Context, tenantSlug string) ([]FAQ, error) {
	var faqs []FAQ
	key := fmt.Sprintf("dashboard:%s:faqs", tenantSlug)
	path := fmt.Sprintf("/companies/%s/faqs", tenantSlug)
	if err := c.cached(ctx, key, path, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

// cached resolves a dashboard resource through the Redis cache
func (c *Client) cached(ctx context.Context, cacheKey, path string, dest interface{}) error {
	if raw, err := c.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		if err := json.Unmarshal([]byte(raw), dest); err == nil {
			return nil
		}
		// Unparsable cache entry: fall through to a fresh fetch.
	}

	body, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode dashboard response for %s: %w", path, err)
	}

	if err := c.redisClient.Set(ctx, cacheKey, body, c.cacheTTL).Err(); err != nil {
		c.log.WithError(err).Debug("dashboard cache write failed")
	}

	return nil
}

// fetch performs one GET against the dashboard API
func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dashboard request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dashboard returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard response: %w", err)
	}
	return body, nil
}
