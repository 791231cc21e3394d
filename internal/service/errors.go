package service

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	// ErrItemNotFound means the cart exists but holds no line item for the
	// requested product. Distinct from ErrCartNotFound on purpose.
	ErrItemNotFound = errors.New("product not in cart")
)
