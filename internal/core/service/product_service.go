package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfandrade/storefront/internal/core/domain"
	"github.com/rfandrade/storefront/internal/port"
)

// ProductService owns the catalog. Reads go through an optional redis cache;
// a cache failure is logged and the read falls back to the database, so the
// cache never decides availability.
type ProductService struct {
	store port.ProductStore
	cache port.CatalogCache // may be nil
}

func NewProductService(store port.ProductStore, cache port.CatalogCache) *ProductService {
	return &ProductService{store: store, cache: cache}
}

// ProductInput carries the fields for a new product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Stock       int
}

// ProductPatch updates only the fields that are non-nil, mirroring a partial
// update where omitted fields keep their current value.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Category    *string
	Stock       *int
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProductList(ctx)
		if err != nil {
			slog.WarnContext(ctx, "catalog cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetProductList(ctx, products); err != nil {
			slog.WarnContext(ctx, "catalog cache write failed", "error", err)
		}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProduct(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "catalog cache read failed", "product_id", id, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.store.ProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, *product); err != nil {
			slog.WarnContext(ctx, "catalog cache write failed", "product_id", id, "error", err)
		}
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, caller domain.Identity, in ProductInput) (*domain.Product, error) {
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}
	if in.Name == "" || !in.Price.IsPositive() {
		return nil, ErrInvalidProduct
	}
	if in.Stock < 0 {
		return nil, ErrInvalidProduct
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.invalidate(ctx, product.ID)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, caller domain.Identity, id string, patch ProductPatch) (*domain.Product, error) {
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}

	product, err := s.store.ProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if product.Name == "" || !product.Price.IsPositive() || product.Stock < 0 {
		return nil, ErrInvalidProduct
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.invalidate(ctx, id)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if !caller.IsAdmin {
		return ErrForbidden
	}

	deleted, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return ErrProductNotFound
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		slog.WarnContext(ctx, "catalog cache invalidation failed", "product_id", id, "error", err)
	}
}
