package service

import "errors"

// Sentinel errors returned by the services. Handlers map them to HTTP status
// codes with errors.Is; anything not listed here is a persistence failure.
var (
	ErrEmptyCart          = errors.New("items are required and cannot be empty")
	ErrInvalidQuantity    = errors.New("each item needs a product id and a positive quantity")
	ErrProductNotFound    = errors.New("one or more products not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrForbidden          = errors.New("admin access only")
	ErrMissingFields      = errors.New("required fields are missing")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidProduct     = errors.New("name and a positive price are required")
)
