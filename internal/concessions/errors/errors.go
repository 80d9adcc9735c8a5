package errors

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")

	ErrDuplicateOrder = errors.New("an order with this key already exists")

	ErrUnknownProduct = errors.New("product is not on the price list")
)
