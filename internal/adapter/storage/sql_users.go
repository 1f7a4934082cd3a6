package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rfandrade/storefront/internal/core/domain"
)

const userColumns = "id, name, email, password_hash, is_admin, created_at"

func (s *SQLStore) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.IsAdmin, formatTime(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLStore) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userBy(ctx, "email", email)
}

func (s *SQLStore) UserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.userBy(ctx, "id", id)
}

func (s *SQLStore) userBy(ctx context.Context, column, value string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE %s = ?`, userColumns, column), value)

	var (
		u       domain.User
		created string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &u, nil
}
