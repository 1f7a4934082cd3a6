package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/rfandrade/storefront/internal/core/domain"
)

// ctxKey is unexported so no other package can collide with our context keys.
type ctxKey string

const identityKey ctxKey = "identity"

// requireAuth verifies the Authorization header and attaches the caller's
// verified identity to the request context. The body never supplies identity.
func (h *HTTPHandler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "no token, authorization denied")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "token format is invalid")
			return
		}

		identity, err := h.tokens.Verify(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, *identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects non-admin callers. Must be mounted after requireAuth.
func (h *HTTPHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		if !identity.IsAdmin {
			writeError(w, http.StatusForbidden, "access denied: admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}
