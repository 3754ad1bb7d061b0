package store

import "errors"

// Sentinel errors returned by the store's public operations. Callers classify
// failures with errors.Is; the store never panics across its API boundary and
// a rejected operation leaves all shared state untouched.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrCartNotFound        = errors.New("cart not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrItemNotFound        = errors.New("item not in cart")
	ErrInvalidDiscountCode = errors.New("invalid or already used discount code")

	// Admin force-issue failures.
	ErrNoOrdersYet       = errors.New("no orders have been placed yet")
	ErrNotAtThreshold    = errors.New("order count has not reached the discount threshold")
	ErrDiscountAvailable = errors.New("an unused discount code is already available")
)
