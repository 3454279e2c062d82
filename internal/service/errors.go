package service

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmptyCart     = errors.New("the cart is empty")
	ErrDuplicateItem = errors.New("product already exists in the wishlist")
	ErrValidation    = errors.New("validation failed")
	ErrDuplicateKey  = errors.New("idempotent key already exists")
)
