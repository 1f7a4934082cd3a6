package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rfandrade/storefront/internal/core/domain"
)

func (s *SQLStore) CountUsers(ctx context.Context) (int64, error) {
	return s.count(ctx, "users")
}

func (s *SQLStore) CountProducts(ctx context.Context) (int64, error) {
	return s.count(ctx, "products")
}

func (s *SQLStore) CountOrders(ctx context.Context) (int64, error) {
	return s.count(ctx, "orders")
}

func (s *SQLStore) count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// TotalRevenue sums order totals in Go so the result stays exact in both
// dialects; SQLite would otherwise coerce the stored text to a float.
func (s *SQLStore) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT total_price FROM orders`)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("query order totals: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Decimal{}, fmt.Errorf("scan order total: %w", err)
		}
		d, err := parseDecimal(raw)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(d)
	}
	return total, rows.Err()
}

func (s *SQLStore) OrdersByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("query orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.OrderStatus(status)] = n
	}
	return counts, rows.Err()
}
