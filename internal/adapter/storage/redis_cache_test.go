package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rfandrade/storefront/internal/core/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCatalogCache) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewRedisCatalogCache(client, time.Minute)
}

func cachedProduct(id, price string) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      "product " + id,
		Price:     decimal.RequireFromString(price),
		Stock:     3,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCatalogCache_ProductRoundTrip(t *testing.T) {
	_, cache := setupTestRedis(t)
	ctx := context.Background()

	miss, err := cache.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if miss != nil {
		t.Errorf("expected miss, got %+v", miss)
	}

	p := cachedProduct("p1", "19.99")
	if err := cache.SetProduct(ctx, p); err != nil {
		t.Fatalf("SetProduct failed: %v", err)
	}

	hit, err := cache.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if hit == nil {
		t.Fatal("expected hit")
	}
	if !hit.Price.Equal(p.Price) || hit.Name != p.Name {
		t.Errorf("cache mangled product: %+v", hit)
	}
}

func TestCatalogCache_ListRoundTripAndInvalidate(t *testing.T) {
	_, cache := setupTestRedis(t)
	ctx := context.Background()

	list := []domain.Product{cachedProduct("p1", "19.99"), cachedProduct("p2", "0.50")}
	if err := cache.SetProductList(ctx, list); err != nil {
		t.Fatalf("SetProductList failed: %v", err)
	}
	if err := cache.SetProduct(ctx, list[0]); err != nil {
		t.Fatalf("SetProduct failed: %v", err)
	}

	cached, err := cache.GetProductList(ctx)
	if err != nil {
		t.Fatalf("GetProductList failed: %v", err)
	}
	if len(cached) != 2 {
		t.Fatalf("expected 2 products, got %d", len(cached))
	}

	if err := cache.Invalidate(ctx, "p1"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	cached, err = cache.GetProductList(ctx)
	if err != nil {
		t.Fatalf("GetProductList failed: %v", err)
	}
	if cached != nil {
		t.Errorf("expected list miss after invalidation, got %d entries", len(cached))
	}
	single, err := cache.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if single != nil {
		t.Errorf("expected product miss after invalidation, got %+v", single)
	}
}

func TestCatalogCache_EntriesExpire(t *testing.T) {
	mr, cache := setupTestRedis(t)
	ctx := context.Background()

	if err := cache.SetProduct(ctx, cachedProduct("p1", "19.99")); err != nil {
		t.Fatalf("SetProduct failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	hit, err := cache.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if hit != nil {
		t.Errorf("expected entry to expire, got %+v", hit)
	}
}
