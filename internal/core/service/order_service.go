package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfandrade/storefront/internal/core/domain"
	"github.com/rfandrade/storefront/internal/port"
)

// OrderService turns a validated cart into a priced, persisted order and
// serves the order read side. All writes for one placement happen inside a
// single transaction obtained from the store.
type OrderService struct {
	store port.OrderStore
}

func NewOrderService(store port.OrderStore) *OrderService {
	return &OrderService{store: store}
}

// PlaceOrder validates the cart, snapshots prices, computes the total and
// persists the order with its items as one atomic unit. On any failure no
// partial order is ever visible.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, lines []domain.CartLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	ids := distinctProductIDs(lines)

	var placed *domain.Order
	err := s.store.WithinTx(ctx, func(tx port.OrderTx) error {
		products, err := tx.ProductsByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("fetch products: %w", err)
		}
		if len(products) != len(ids) {
			return ErrProductNotFound
		}

		byID := make(map[string]domain.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		now := time.Now().UTC()
		order := &domain.Order{
			ID:        uuid.NewString(),
			UserID:    userID,
			Status:    domain.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}

		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(lines))
		for _, line := range lines {
			product := byID[line.ProductID]
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, domain.OrderItem{
				ID:        uuid.NewString(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
		}
		order.TotalPrice = total
		order.Items = items

		if err := tx.InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if err := tx.InsertOrderItems(ctx, items); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// UpdateStatus moves an order to any of the enumerated states. Transitions
// are unconditional: no graph is enforced, the last write wins.
func (s *OrderService) UpdateStatus(ctx context.Context, caller domain.Identity, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// OrdersForUser lists the caller's own orders, most recent first.
func (s *OrderService) OrdersForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.store.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders for user: %w", err)
	}
	return orders, nil
}

// AllOrders lists every order with owning-user summaries. Admin only.
func (s *OrderService) AllOrders(ctx context.Context, caller domain.Identity) ([]domain.Order, error) {
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}
	orders, err := s.store.AllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

func distinctProductIDs(lines []domain.CartLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
