package quote_price

import (
	"fmt"
	"math"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// roundCents rounds a dollar amount to whole cents.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute builds the ordered price breakdown for a candidate window.
//
// Line order is fixed: base, fees, tier discount, promo discount, deposit
// memo, tax. The discount chain runs at full float precision; amounts are
// rounded to cents only when a line is appended, and the total is the sum
// of the rounded non-deposit lines so the displayed breakdown always adds
// up exactly.
//
// The deposit is a "due now" memo: it never subtracts from the total.
func Compute(
	mode domain.Mode,
	window domain.TimeWindow,
	tier *domain.CustomerTier,
	resourceCount int,
	attendeeCount int,
	promo *domain.DiscountCode,
	rates domain.PricingRates,
) (*domain.PriceBreakdown, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, string(mode))
	}

	breakdown := &domain.PriceBreakdown{
		Lines:    []domain.BreakdownLine{},
		Currency: rates.Currency,
	}

	// Administrative holds are never charged.
	if !mode.Priced() {
		return breakdown, nil
	}

	if mode == domain.ModeBooking && tier == nil {
		return nil, ErrTierRequired
	}

	hours := window.Hours()
	if hours <= 0 {
		return nil, fmt.Errorf("%w: window must have a positive duration", ErrInvalidInput)
	}
	if resourceCount < 1 {
		resourceCount = 1
	}

	var total float64
	appendLine := func(line domain.BreakdownLine) {
		line.Amount = roundCents(line.Amount)
		breakdown.Lines = append(breakdown.Lines, line)
		if line.Kind != domain.LineDeposit {
			total += line.Amount
		}
	}

	// 1. Base price and fee lines.
	var base, fees float64

	switch mode {
	case domain.ModeBooking:
		base = hours * tier.HourlyRate
		appendLine(domain.BreakdownLine{
			Label:       "Bay time",
			Amount:      base,
			Kind:        domain.LineBase,
			Description: fmt.Sprintf("%.1f h × $%.2f/hr", hours, tier.HourlyRate),
		})

		if extra := resourceCount - 1; extra > 0 {
			fee := float64(extra) * rates.ExtraResourceHourly * hours
			fees += fee
			appendLine(domain.BreakdownLine{
				Label:       "Additional bays",
				Amount:      fee,
				Kind:        domain.LineFee,
				Description: fmt.Sprintf("%d × $%.2f/hr × %.1f h", extra, rates.ExtraResourceHourly, hours),
			})
		}

	case domain.ModeEvent:
		base = hours * rates.EventHourly
		appendLine(domain.BreakdownLine{
			Label:       "Event time",
			Amount:      base,
			Kind:        domain.LineBase,
			Description: fmt.Sprintf("%.1f h × $%.2f/hr", hours, rates.EventHourly),
		})

		if extra := attendeeCount - rates.AttendeeThreshold; extra > 0 {
			fee := float64(extra) * rates.PerAttendeeFee
			fees += fee
			appendLine(domain.BreakdownLine{
				Label:       "Extra attendees",
				Amount:      fee,
				Kind:        domain.LineFee,
				Description: fmt.Sprintf("%d over %d × $%.2f", extra, rates.AttendeeThreshold, rates.PerAttendeeFee),
			})
		}

	case domain.ModeClass:
		base = hours * rates.ClassHourly
		appendLine(domain.BreakdownLine{
			Label:       "Class time",
			Amount:      base,
			Kind:        domain.LineBase,
			Description: fmt.Sprintf("%.1f h × $%.2f/hr", hours, rates.ClassHourly),
		})
	}

	subtotal := base + fees

	// 2. Tier discount, a percentage of the base line only.
	var tierDiscount float64
	if tier != nil && tier.DiscountPercent > 0 {
		tierDiscount = base * tier.DiscountPercent / 100
		appendLine(domain.BreakdownLine{
			Label:       tier.Name + " discount",
			Amount:      -tierDiscount,
			Kind:        domain.LineDiscount,
			Description: fmt.Sprintf("%.0f%% off bay time", tier.DiscountPercent),
		})
	}

	remainder := subtotal - tierDiscount

	// 3. Promo discount applies to the remainder after the tier discount.
	// Fixed amounts clamp to the remainder so the total never goes negative.
	var promoDiscount float64
	if promo != nil {
		switch promo.Type {
		case domain.PromoPercentage:
			promoDiscount = remainder * promo.Value / 100
			if promoDiscount > 0 {
				appendLine(domain.BreakdownLine{
					Label:       "Promo " + promo.Code,
					Amount:      -promoDiscount,
					Kind:        domain.LineDiscount,
					Description: fmt.Sprintf("%.0f%% off", promo.Value),
				})
			}
		case domain.PromoFixedAmount:
			promoDiscount = math.Min(promo.Value, remainder)
			if promoDiscount > 0 {
				appendLine(domain.BreakdownLine{
					Label:       "Promo " + promo.Code,
					Amount:      -promoDiscount,
					Kind:        domain.LineDiscount,
					Description: fmt.Sprintf("$%.2f off", promo.Value),
				})
			}
		}
	}

	discounted := remainder - promoDiscount

	// 4. Deposit memo. Due at booking time, not an extra charge.
	depositPercent := 0.0
	switch {
	case tier != nil && tier.RequiresDeposit:
		depositPercent = tier.DepositPercent
	case mode == domain.ModeEvent:
		depositPercent = rates.EventDepositPercent
	}
	if deposit := discounted * depositPercent / 100; deposit > 0 {
		appendLine(domain.BreakdownLine{
			Label:       "Deposit due now",
			Amount:      deposit,
			Kind:        domain.LineDeposit,
			Description: fmt.Sprintf("%.0f%% of subtotal, due at booking", depositPercent),
		})
	}

	// 5. Tax on the discounted subtotal, always the last line.
	if rates.TaxRate > 0 {
		appendLine(domain.BreakdownLine{
			Label:       "HST",
			Amount:      discounted * rates.TaxRate,
			Kind:        domain.LineTax,
			Description: fmt.Sprintf("%.0f%%", rates.TaxRate*100),
		})
	}

	breakdown.TotalAmount = roundCents(total)
	return breakdown, nil
}
