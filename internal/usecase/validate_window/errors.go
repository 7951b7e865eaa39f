package validate_window

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("validate_window: invalid input data")

	// ErrTierNotFound is returned when the directory knows no such tier
	ErrTierNotFound = errors.New("validate_window: customer tier not found")

	// ErrTierUnavailable is returned when the tier directory cannot be reached
	ErrTierUnavailable = errors.New("validate_window: tier directory unavailable")
)
