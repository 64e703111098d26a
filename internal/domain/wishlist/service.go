// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const wishlistTTL = 90 * 24 * time.Hour

// Item represents one saved product reference, snapshotted at save time
type Item struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// AddRequest represents add to wishlist request
type AddRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url"`
}

// Service handles wishlist business logic. Lists are keyed by tenant and
// device session and live in Redis; a device that never returns lets its
// list expire.
type Service struct {
	redisClient *redis.Client
	log         *logrus.Entry
}

// NewService creates a new wishlist service
func NewService(redisClient *redis.Client, logger *logrus.Logger) *Service {
	return &Service{
		redisClient: redisClient,
		log:         logger.WithField("component", "wishlist"),
	}
}

// List returns the session's saved items, newest first
func (s *Service) List(ctx context.Context, tenantSlug, sessionID string) ([]Item, error) {
	return s.load(ctx, key(tenantSlug, sessionID))
}

// Add saves a product reference. Adding a product already on the list is
// a no-op.
func (s *Service) Add(ctx context.Context, tenantSlug, sessionID string, req *AddRequest) ([]Item, error) {
	k := key(tenantSlug, sessionID)
	items, err := s.load(ctx, k)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.ProductID == req.ProductID {
			return items, nil
		}
	}

	items = append([]Item{{
		ProductID: req.ProductID,
		Name:      req.Name,
		Slug:      req.Slug,
		Price:     req.Price,
		ImageURL:  req.ImageURL,
		AddedAt:   time.Now().UTC(),
	}}, items...)

	if err := s.save(ctx, k, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove drops a product reference. Removing an absent product is a
// no-op.
func (s *Service) Remove(ctx context.Context, tenantSlug, sessionID, productID string) ([]Item, error) {
	k := key(tenantSlug, sessionID)
	items, err := s.load(ctx, k)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			if err := s.save(ctx, k, items); err != nil {
				return nil, err
			}
			break
		}
	}
	return items, nil
}

// Clear empties the session's wishlist
func (s *Service) Clear(ctx context.Context, tenantSlug, sessionID string) error {
	return s.redisClient.Del(ctx, key(tenantSlug, sessionID)).Err()
}

func (s *Service) load(ctx context.Context, k string) ([]Item, error) {
	raw, err := s.redisClient.Get(ctx, k).Result()
	if err == redis.Nil {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.WithError(err).Warn("wishlist payload unparsable, starting empty")
		return []Item{}, nil
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, k string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode wishlist: %w", err)
	}
	if err := s.redisClient.Set(ctx, k, raw, wishlistTTL).Err(); err != nil {
		return fmt.Errorf("failed to save wishlist: %w", err)
	}
	return nil
}

func key(tenantSlug, sessionID string) string {
	return fmt.Sprintf("wishlist:%s:%s", tenantSlug, sessionID)
}
