package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rfandrade/storefront/internal/core/domain"
)

const (
	productKeyPrefix = "catalog:product:"
	productListKey   = "catalog:products"
)

// RedisCatalogCache caches catalog reads as JSON blobs with a TTL. It is
// purely an accelerator: every method reports errors to the caller, which
// treats them as a miss.
type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{client: client, ttl: ttl}
}

func (c *RedisCatalogCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get product: %w", err)
	}

	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("cache decode product: %w", err)
	}
	return &p, nil
}

func (c *RedisCatalogCache) SetProduct(ctx context.Context, p domain.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cache encode product: %w", err)
	}
	return c.client.Set(ctx, productKeyPrefix+p.ID, raw, c.ttl).Err()
}

func (c *RedisCatalogCache) GetProductList(ctx context.Context) ([]domain.Product, error) {
	raw, err := c.client.Get(ctx, productListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get product list: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("cache decode product list: %w", err)
	}
	return products, nil
}

func (c *RedisCatalogCache) SetProductList(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("cache encode product list: %w", err)
	}
	return c.client.Set(ctx, productListKey, raw, c.ttl).Err()
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context, id string) error {
	keys := []string{productListKey}
	if id != "" {
		keys = append(keys, productKeyPrefix+id)
	}
	return c.client.Del(ctx, keys...).Err()
}
