package order

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUnauthenticated = errors.New("identity required to list orders")
	ErrUnknownRole     = errors.New("unknown role")

	// -- Validation & Input --
	ErrInvalidStatus = errors.New("invalid order status")

	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")
)
