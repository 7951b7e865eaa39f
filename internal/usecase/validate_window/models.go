package validate_window

import (
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// Request is the validation input after HTTP parsing.
type Request struct {
	Mode   domain.Mode
	Window domain.TimeWindow
	TierID *string // optional; caps duration when the tier carries a maximum
}

// Result is the validation outcome. Failures are values, never errors:
// Reason carries the human-readable explanation shown inline on the form.
type Result struct {
	Valid  bool
	Reason string
}

func invalid(reason string) Result {
	return Result{Reason: reason}
}

var valid = Result{Valid: true}
