package quote_price

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrTierRequired is returned when a booking quote has no tier
	ErrTierRequired = errors.New("quote_price: customer tier is required for booking mode")

	// ErrTierNotFound is returned when the directory knows no such tier
	ErrTierNotFound = errors.New("quote_price: customer tier not found")

	// ErrTierUnavailable is returned when the tier directory cannot be reached
	ErrTierUnavailable = errors.New("quote_price: tier directory unavailable")

	// ErrPromoNotFound is returned when the promo code does not resolve
	ErrPromoNotFound = errors.New("quote_price: promo code not found")

	// ErrPromoInactive is returned when the promo code resolved but is disabled
	ErrPromoInactive = errors.New("quote_price: promo code is not active")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("quote_price: internal error")
)
