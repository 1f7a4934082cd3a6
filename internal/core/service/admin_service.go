package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rfandrade/storefront/internal/core/domain"
	"github.com/rfandrade/storefront/internal/port"
)

// AdminService aggregates the dashboard numbers. Read-only.
type AdminService struct {
	store port.StatsStore
}

func NewAdminService(store port.StatsStore) *AdminService {
	return &AdminService{store: store}
}

type StatusCount struct {
	Status domain.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

type DashboardStats struct {
	TotalUsers     int64           `json:"totalUsers"`
	TotalProducts  int64           `json:"totalProducts"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	OrdersByStatus []StatusCount   `json:"ordersByStatus"`
}

// Dashboard returns the cross-table counts and the revenue sum. Admin only.
func (s *AdminService) Dashboard(ctx context.Context, caller domain.Identity) (*DashboardStats, error) {
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}

	users, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	products, err := s.store.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	orders, err := s.store.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	revenue, err := s.store.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	byStatus, err := s.store.OrdersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}

	// Canonical status order keeps the response stable across calls.
	counts := make([]StatusCount, 0, len(byStatus))
	for _, status := range domain.OrderStatuses {
		if n, ok := byStatus[status]; ok {
			counts = append(counts, StatusCount{Status: status, Count: n})
		}
	}

	return &DashboardStats{
		TotalUsers:     users,
		TotalProducts:  products,
		TotalOrders:    orders,
		TotalRevenue:   revenue,
		OrdersByStatus: counts,
	}, nil
}
