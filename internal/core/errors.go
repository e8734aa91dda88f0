package core

import "errors"

var (
	// ErrInsufficientStock is returned by CreateSale when the negative-stock
	// policy forbids the requested quantity. Nothing is mutated.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductNotFound is returned when an operation needs a product that
	// does not exist (its price and name snapshots cannot be derived).
	ErrProductNotFound = errors.New("product not found")

	// ErrSaleNotFound is returned by lookups; sale mutations on unknown ids
	// are silent no-ops instead.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrInvalidQuantity is returned by CreateSale for quantities below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrInvalidCredentials is returned by Authenticate on a bad
	// username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
