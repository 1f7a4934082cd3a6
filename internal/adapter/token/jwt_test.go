package token

import (
	"errors"
	"testing"
	"time"

	"github.com/rfandrade/storefront/internal/core/domain"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	signed, err := m.Issue(&domain.User{ID: "u1", IsAdmin: true})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	identity, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if identity.UserID != "u1" || !identity.IsAdmin {
		t.Errorf("unexpected identity: %+v", identity)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)

	signed, err := m.Issue(&domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := NewJWTManager("secret-a", time.Hour).Issue(&domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewJWTManager("secret-b", time.Hour).Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	if _, err := m.Verify("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
