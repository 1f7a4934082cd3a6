package handler

import (
	"github.com/shopspring/decimal"

	"github.com/rfandrade/storefront/internal/core/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
}

// updateProductRequest uses pointers so absent fields keep their value.
type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
}

type placeOrderRequest struct {
	Items []domain.CartLine `json:"items"`
}

type placeOrderResponse struct {
	Message     string          `json:"message"`
	OrderID     string          `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}
