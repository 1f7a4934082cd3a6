package handler

import (
	"errors"
	"net/http"

	"github.com/rfandrade/storefront/internal/core/service"
)

func (h *HTTPHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	stats, err := h.admin.Dashboard(r.Context(), identity)
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, stats)
	}
}
