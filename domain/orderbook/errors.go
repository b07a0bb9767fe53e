package orderbook

import "errors"

var (
	// ErrInvalidQuantity rejects non-positive quantities at the boundary.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidPrice rejects non-positive limit prices at the boundary.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrOrderNotFound means the id was never issued or already retired.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyFilled means the id is known but the order no longer rests.
	ErrAlreadyFilled = errors.New("order already filled or not active")
	// ErrNoReference means a peg was requested with nothing to track.
	ErrNoReference = errors.New("no reference price to peg to")
	// ErrInvalidPegCombination rejects peg references crossed with the wrong
	// side; only bid/buy and offer/sell are allowed.
	ErrInvalidPegCombination = errors.New("invalid peg reference and side combination")
	// ErrPriceRequired rejects a quantity-only modify of a plain limit order.
	ErrPriceRequired = errors.New("price required to modify a limit order")
)
