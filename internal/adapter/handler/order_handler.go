package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rfandrade/storefront/internal/core/domain"
	"github.com/rfandrade/storefront/internal/core/service"
)

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req placeOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), identity.UserID, req.Items)
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusCreated, placeOrderResponse{
			Message:     "Order created successfully",
			OrderID:     order.ID,
			TotalAmount: order.TotalPrice,
		})
	}
}

func (h *HTTPHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	orders, err := h.orders.OrdersForUser(r.Context(), identity.UserID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *HTTPHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	orders, err := h.orders.AllOrders(r.Context(), identity)
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, orders)
	}
}

func (h *HTTPHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req updateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), identity,
		chi.URLParam(r, "id"), domain.OrderStatus(req.Status))
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Order status updated",
			"order":   order,
		})
	}
}
