// Command seed provisions a development database with an admin account and a
// small demo catalog. Safe to run repeatedly: existing rows are kept.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/rfandrade/storefront/internal/adapter/storage"
	"github.com/rfandrade/storefront/internal/config"
	"github.com/rfandrade/storefront/internal/core/domain"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Load()

	var (
		store *storage.SQLStore
		err   error
	)
	if cfg.DBDriver == "sqlite" {
		store, err = storage.OpenSQLite(ctx, cfg.SQLitePath)
	} else {
		store, err = storage.OpenMySQL(ctx, cfg.MySQLDSN)
	}
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := seedAdmin(ctx, store); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedProducts(ctx, store); err != nil {
		log.Fatalf("seed products: %v", err)
	}
	log.Println("seed complete")
}

func seedAdmin(ctx context.Context, store *storage.SQLStore) error {
	const email = "admin@storefront.local"

	existing, err := store.UserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Printf("admin %s already present", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		return err
	}
	log.Printf("created admin %s (password admin123)", email)
	return nil
}

func seedProducts(ctx context.Context, store *storage.SQLStore) error {
	existing, err := store.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("catalog already has %d products", len(existing))
		return nil
	}

	demo := []struct {
		name, category, description string
		price                       string
		stock                       int
	}{
		{"Mechanical Keyboard", "electronics", "Hot-swappable 87-key board", "89.99", 40},
		{"Espresso Grinder", "kitchen", "Conical burr grinder", "129.50", 15},
		{"Trail Running Shoes", "sports", "Lightweight with 6mm drop", "74.95", 60},
		{"Desk Lamp", "home", "Warm LED with touch dimmer", "24.99", 120},
	}

	now := time.Now().UTC()
	for _, d := range demo {
		p := &domain.Product{
			ID:          uuid.NewString(),
			Name:        d.name,
			Description: d.description,
			Price:       decimal.RequireFromString(d.price),
			Category:    d.category,
			Stock:       d.stock,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := store.CreateProduct(ctx, p); err != nil {
			return err
		}
		now = now.Add(time.Millisecond)
	}
	log.Printf("created %d demo products", len(demo))
	return nil
}
