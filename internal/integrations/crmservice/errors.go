package crmservice

import "errors"

var (
	// ErrTierNotFound is returned when the directory knows no such tier
	ErrTierNotFound = errors.New("customer tier not found")

	// ErrPromoNotFound is returned when the code does not resolve
	ErrPromoNotFound = errors.New("promo code not found")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("crmservice client: internal error")

	// ErrInvalidResponse is returned when the CRM answers with an unexpected payload
	ErrInvalidResponse = errors.New("crmservice client: invalid response")
)
