package domain

// LineKind classifies a breakdown line. Discounts carry negative amounts;
// deposit lines are informational and excluded from the total.
type LineKind string

const (
	LineBase     LineKind = "base"
	LineFee      LineKind = "fee"
	LineDiscount LineKind = "discount"
	LineDeposit  LineKind = "deposit"
	LineTax      LineKind = "tax"
)

// BreakdownLine is one display row of a price breakdown.
type BreakdownLine struct {
	Label       string
	Amount      float64 // signed; discounts negative, deposit positive memo
	Kind        LineKind
	Description string
}

// PriceBreakdown is the full ordered pricing result for a draft. Line
// order is fixed: base, fees, discounts, deposit memo, tax.
type PriceBreakdown struct {
	Lines       []BreakdownLine
	TotalAmount float64
	Currency    string
}

// LineSum adds every line except deposit memos. The invariant
// LineSum() == TotalAmount holds for all computed breakdowns.
func (b *PriceBreakdown) LineSum() float64 {
	var sum float64
	for _, line := range b.Lines {
		if line.Kind == LineDeposit {
			continue
		}
		sum += line.Amount
	}
	return sum
}

// DepositDue returns the amount payable at booking time, zero when no
// deposit line is present.
func (b *PriceBreakdown) DepositDue() float64 {
	for _, line := range b.Lines {
		if line.Kind == LineDeposit {
			return line.Amount
		}
	}
	return 0
}

// TotalDiscount returns the absolute value of all discount lines.
func (b *PriceBreakdown) TotalDiscount() float64 {
	var sum float64
	for _, line := range b.Lines {
		if line.Kind == LineDiscount {
			sum -= line.Amount
		}
	}
	return sum
}

// PricingRates holds the facility-level pricing knobs fed from
// configuration. Tier-specific rates live on CustomerTier.
type PricingRates struct {
	Currency            string
	TaxRate             float64 // e.g. 0.13
	ExtraResourceHourly float64 // per additional bay beyond the first
	EventHourly         float64
	ClassHourly         float64
	AttendeeThreshold   int
	PerAttendeeFee      float64 // per attendee above the threshold
	EventDepositPercent float64 // 0..100, events without a tier deposit rule
}
