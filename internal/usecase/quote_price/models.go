package quote_price

import (
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// Request is the quote input after HTTP parsing.
type Request struct {
	Mode          domain.Mode
	Window        domain.TimeWindow
	TierID        *string // required for booking mode
	ResourceCount int     // bays held; minimum 1
	AttendeeCount int     // events only
	PromoCode     *string
}

// Response carries the computed breakdown.
type Response struct {
	Lines       []domain.BreakdownLine
	TotalAmount float64
	DepositDue  float64
	Currency    string
}
