package commit_reservation

import (
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// Request is the fully assembled draft ready to become a committed record.
type Request struct {
	LocationID  int64
	ResourceIDs []int64
	Mode        domain.Mode
	Window      domain.TimeWindow

	CustomerRef   *string
	CustomerName  *string
	TierID        *string
	EventName     *string
	AttendeeCount int
	Reason        *string
	PromoCode     *string

	TotalAmount float64
	Currency    string
}

// Response carries the committed reservation with its confirmation code.
type Response struct {
	Reservation *domain.Reservation
}
