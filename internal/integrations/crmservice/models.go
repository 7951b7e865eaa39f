package crmservice

import "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"

// Tier is the pricing class payload returned by the CRM directory.
type Tier struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	HourlyRate         float64 `json:"hourly_rate"`
	DiscountPercent    float64 `json:"discount_percent"`
	RequiresDeposit    bool    `json:"requires_deposit"`
	DepositPercent     float64 `json:"deposit_percent"`
	MaxDurationMinutes int     `json:"max_duration_minutes"`
}

// ToDomain converts the CRM payload into the domain tier.
func (t *Tier) ToDomain() *domain.CustomerTier {
	return &domain.CustomerTier{
		ID:                 t.ID,
		Name:               t.Name,
		HourlyRate:         t.HourlyRate,
		DiscountPercent:    t.DiscountPercent,
		RequiresDeposit:    t.RequiresDeposit,
		DepositPercent:     t.DepositPercent,
		MaxDurationMinutes: t.MaxDurationMinutes,
	}
}

// Promo is the discount code payload returned by the CRM directory.
// Type is authoritative; the code text carries no meaning.
type Promo struct {
	Code   string  `json:"code"`
	Type   string  `json:"type"` // "percentage" or "fixedAmount"
	Value  float64 `json:"value"`
	Active bool    `json:"active"`
}

// ToDomain converts the CRM payload into a domain discount code.
func (p *Promo) ToDomain() (*domain.DiscountCode, error) {
	promoType, err := domain.ParsePromoType(p.Type)
	if err != nil {
		return nil, err
	}
	return &domain.DiscountCode{
		Code:  p.Code,
		Type:  promoType,
		Value: p.Value,
	}, nil
}

// ErrorResponse is the CRM error envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
