package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rfandrade/storefront/internal/core/domain"
)

const productColumns = "id, name, description, price, image_url, category, stock, created_at, updated_at"

func (s *SQLStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, image_url, category, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, formatDecimal(p.Price), p.ImageURL, p.Category,
		p.Stock, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *SQLStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, image_url = ?, category = ?, stock = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, formatDecimal(p.Price), p.ImageURL, p.Category,
		p.Stock, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (s *SQLStore) DeleteProduct(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

func (s *SQLStore) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM products WHERE id = ?`, productColumns), id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM products ORDER BY created_at DESC, id DESC`, productColumns))
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p                            domain.Product
		price, created, updated      string
		description, imageURL, category sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &description, &price, &imageURL, &category,
		&p.Stock, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.Category = category.String
	if p.Price, err = parseDecimal(price); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}
