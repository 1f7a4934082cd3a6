package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rfandrade/storefront/internal/telemetry"
)

// NewRouter mounts the whole API surface. metrics may be nil (tests).
func NewRouter(h *HTTPHandler, metrics *telemetry.HTTPMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if metrics != nil {
		r.Use(metrics.Middleware)
		r.Handle("/metrics", telemetry.MetricsHandler())
	}

	r.Get("/api/health", h.HealthCheck)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(h.requireAuth).Get("/me", h.Me)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.With(h.requireAuth, h.requireAdmin).Post("/", h.CreateProduct)
		r.With(h.requireAuth, h.requireAdmin).Put("/{id}", h.UpdateProduct)
		r.With(h.requireAuth, h.requireAdmin).Delete("/{id}", h.DeleteProduct)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/", h.PlaceOrder)
		r.Get("/my", h.MyOrders)
		r.Get("/", h.AllOrders)
		r.Patch("/{id}/status", h.UpdateOrderStatus)
	})

	r.With(h.requireAuth, h.requireAdmin).Get("/api/admin/dashboard", h.Dashboard)

	return r
}
