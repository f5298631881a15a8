package domain

import "errors"

var (
	ErrInvalidItem         = errors.New("Invalid item")
	ErrInvalidQuantity     = errors.New("Quantity must be positive")
	ErrInvalidContributor  = errors.New("Contributor is required")
	ErrInvalidPrice        = errors.New("Price must be positive")
	ErrInvalidAmount       = errors.New("Amount must be positive")
	ErrInsufficientStock   = errors.New("Insufficient stock")
	ErrInsufficientBalance = errors.New("Insufficient balance")
	ErrBasketNotFound      = errors.New("Basket not found")
	ErrEmptyBasket         = errors.New("Basket has no items")
	ErrParseFailure        = errors.New("Could not parse sale notification")
	ErrDuplicateDelivery   = errors.New("Delivery already processed")
)
