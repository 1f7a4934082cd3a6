package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rfandrade/storefront/internal/core/domain"
)

const orderColumns = "id, user_id, total_price, status, created_at, updated_at"

// orderTx is the transaction-scoped handle handed to the placement sequence.
// Everything it writes is invisible until the surrounding WithinTx commits.
type orderTx struct {
	tx *sql.Tx
}

func (t *orderTx) ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id IN (%s)`,
		productColumns, placeholders(len(ids)))
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products by ids: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (t *orderTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total_price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, formatDecimal(order.TotalPrice), string(order.Status),
		formatTime(order.CreatedAt), formatTime(order.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (t *orderTx) InsertOrderItems(ctx context.Context, items []domain.OrderItem) error {
	for _, item := range items {
		_, err := t.tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?, ?)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity, formatDecimal(item.Price),
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	now := formatTime(time.Now())
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), now, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM orders WHERE id = ?`, orderColumns), orderID)
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *SQLStore) OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, orderColumns), userID)
	if err != nil {
		return nil, fmt.Errorf("query orders by user: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *SQLStore) AllOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.total_price, o.status, o.created_at, o.updated_at,
		       u.id, u.name, u.email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query all orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			o                         domain.Order
			total, created, updated   string
			status                    string
			userID, userName, userEmail sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.UserID, &total, &status, &created, &updated,
			&userID, &userName, &userEmail); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := fillOrder(&o, total, status, created, updated); err != nil {
			return nil, err
		}
		if userID.Valid {
			o.User = &domain.UserSummary{
				ID:    userID.String,
				Name:  userName.String,
				Email: userEmail.String,
			}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the items for all given orders in one query, each joined
// with the live product projection when the product still exists.
func (s *SQLStore) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[string]*domain.Order, len(orders))
	args := make([]any, len(orders))
	for i := range orders {
		index[orders[i].ID] = &orders[i]
		args[i] = orders[i].ID
	}

	query := fmt.Sprintf(`
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.id, p.name, p.price
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (%s)
		ORDER BY oi.id`, placeholders(len(orders)))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item                      domain.OrderItem
			price                     string
			prodID, prodName, prodPrice sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &price,
			&prodID, &prodName, &prodPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if item.Price, err = parseDecimal(price); err != nil {
			return err
		}
		if prodID.Valid {
			current, err := parseDecimal(prodPrice.String)
			if err != nil {
				return err
			}
			item.Product = &domain.ProductSummary{
				ID:    prodID.String,
				Name:  prodName.String,
				Price: current,
			}
		}
		if order, ok := index[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o                       domain.Order
		total, created, updated string
		status                  string
	)
	if err := row.Scan(&o.ID, &o.UserID, &total, &status, &created, &updated); err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if err := fillOrder(&o, total, status, created, updated); err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func fillOrder(o *domain.Order, total, status, created, updated string) error {
	var err error
	if o.TotalPrice, err = parseDecimal(total); err != nil {
		return err
	}
	o.Status = domain.OrderStatus(status)
	if o.CreatedAt, err = parseTime(created); err != nil {
		return err
	}
	if o.UpdatedAt, err = parseTime(updated); err != nil {
		return err
	}
	return nil
}
