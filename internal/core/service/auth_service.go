package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rfandrade/storefront/internal/core/domain"
	"github.com/rfandrade/storefront/internal/port"
)

// AuthService registers users, verifies credentials and hands out bearer
// tokens. Password hashes never leave this package.
type AuthService struct {
	store  port.UserStore
	tokens port.TokenManager
}

func NewAuthService(store port.UserStore, tokens port.TokenManager) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register creates a new account and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, name, email, password string, isAdmin bool) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	existing, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("lookup user by email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("lookup user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Profile loads the account behind a verified identity.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user by id: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
