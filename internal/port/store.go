package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rfandrade/storefront/internal/core/domain"
)

// OrderTx is the storage-session handle passed to the order placement
// sequence. Every call runs against the same underlying transaction, so the
// fetch/insert steps either all commit or all roll back.
type OrderTx interface {
	// ProductsByIDs returns the products matching ids. Missing ids are simply
	// absent from the result; the caller compares cardinality.
	ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)

	InsertOrder(ctx context.Context, order *domain.Order) error

	InsertOrderItems(ctx context.Context, items []domain.OrderItem) error
}

type OrderStore interface {
	// WithinTx runs fn inside a single transaction. The transaction commits
	// only when fn returns nil; any error (or panic unwinding) rolls back
	// everything fn wrote.
	WithinTx(ctx context.Context, fn func(tx OrderTx) error) error

	// UpdateOrderStatus persists the new status and returns the updated
	// order snapshot. Returns (nil, nil) when no such order exists.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)

	// OrdersByUser returns the user's orders, most recent first, each with
	// items and product summaries attached.
	OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// AllOrders returns every order, most recent first, with items, product
	// summaries and the owning-user summary attached.
	AllOrders(ctx context.Context) ([]domain.Order, error)
}

type ProductStore interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error

	// DeleteProduct reports whether a row was actually removed.
	DeleteProduct(ctx context.Context, id string) (bool, error)

	// ProductByID returns (nil, nil) when no such product exists.
	ProductByID(ctx context.Context, id string) (*domain.Product, error)

	// ListProducts returns the whole catalog, newest first.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error

	// UserByEmail returns (nil, nil) when no such user exists.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UserByID returns (nil, nil) when no such user exists.
	UserByID(ctx context.Context, id string) (*domain.User, error)
}

type StatsStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)

	// TotalRevenue sums every order total in the decimal domain. Zero when
	// there are no orders.
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)

	OrdersByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)
}
