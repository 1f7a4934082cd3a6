package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rfandrade/storefront/internal/core/service"
)

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, product)
	}
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req createProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.products.Create(r.Context(), identity, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidProduct):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Product created successfully",
			"product": product,
		})
	}
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req updateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.products.Update(r.Context(), identity, chi.URLParam(r, "id"), service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrInvalidProduct):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Product updated successfully",
			"product": product,
		})
	}
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	err := h.products.Delete(r.Context(), identity, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
	}
}
