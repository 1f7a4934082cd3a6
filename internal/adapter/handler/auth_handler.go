package handler

import (
	"errors"
	"net/http"

	"github.com/rfandrade/storefront/internal/core/service"
)

func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, tok, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password, req.IsAdmin)
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusCreated, authResponse{
			Message: "User registered successfully",
			User:    user,
			Token:   tok,
		})
	}
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, tok, err := h.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, authResponse{
			Message: "Login successful",
			User:    user,
			Token:   tok,
		})
	}
}

func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.auth.Profile(r.Context(), identity.UserID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}
