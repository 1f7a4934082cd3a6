package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rfandrade/storefront/internal/core/service"
	"github.com/rfandrade/storefront/internal/port"
)

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPHandler struct {
	auth     *service.AuthService
	products *service.ProductService
	orders   *service.OrderService
	admin    *service.AdminService
	tokens   port.TokenManager
	db       Pinger
}

func NewHTTPHandler(
	auth *service.AuthService,
	products *service.ProductService,
	orders *service.OrderService,
	admin *service.AdminService,
	tokens port.TokenManager,
	db Pinger,
) *HTTPHandler {
	return &HTTPHandler{
		auth:     auth,
		products: products,
		orders:   orders,
		admin:    admin,
		tokens:   tokens,
		db:       db,
	}
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "API working"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// serverError logs the unexpected error and hides it from the client.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "server error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
