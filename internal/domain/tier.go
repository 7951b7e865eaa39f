package domain

import "fmt"

// CustomerTier is a pricing class resolved from the CRM directory.
type CustomerTier struct {
	ID              string
	Name            string
	HourlyRate      float64
	DiscountPercent float64 // 0..100, applied to the base line
	RequiresDeposit bool
	DepositPercent  float64 // 0..100, of the discounted remainder

	// MaxDurationMinutes caps booking length for the tier. Zero means the
	// mode maximum applies unchanged.
	MaxDurationMinutes int
}

// PromoType distinguishes how a discount code's value applies.
type PromoType string

const (
	PromoPercentage  PromoType = "percentage"
	PromoFixedAmount PromoType = "fixedAmount"
)

// ParsePromoType converts a wire string into a PromoType.
func ParsePromoType(s string) (PromoType, error) {
	t := PromoType(s)
	if t != PromoPercentage && t != PromoFixedAmount {
		return "", fmt.Errorf("domain: unknown promo type %q", s)
	}
	return t, nil
}

// DiscountCode is a resolved promo code. The type field is authoritative;
// nothing is inferred from the code text itself.
type DiscountCode struct {
	Code  string
	Type  PromoType
	Value float64 // percent for percentage, dollars for fixedAmount
}
