package port

import "github.com/rfandrade/storefront/internal/core/domain"

// TokenManager issues and verifies bearer tokens for authenticated requests.
type TokenManager interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.Identity, error)
}
