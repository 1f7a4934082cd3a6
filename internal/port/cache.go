package port

import (
	"context"

	"github.com/rfandrade/storefront/internal/core/domain"
)

// CatalogCache is a read-through cache in front of the product catalog.
// Misses are reported as (nil, nil); failures must never be fatal for reads.
type CatalogCache interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, p domain.Product) error

	GetProductList(ctx context.Context) ([]domain.Product, error)
	SetProductList(ctx context.Context, products []domain.Product) error

	// Invalidate drops the list entry and, when id is non-empty, the single
	// product entry. Called after every catalog write.
	Invalidate(ctx context.Context, id string) error
}
