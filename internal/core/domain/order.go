package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every valid lifecycle state, in canonical order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CartLine is a single (product, quantity) pair submitted at checkout.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderItem is one line of a persisted order. Price is a snapshot of the
// product price at order time and never changes afterwards, even when the
// catalog price does.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`

	// Product carries the current catalog projection for display. Nil when
	// the product has since been deleted.
	Product *ProductSummary `json:"product,omitempty"`
}

type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     OrderStatus     `json:"status"`
	Items      []OrderItem     `json:"items,omitempty"`
	User       *UserSummary    `json:"user,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
