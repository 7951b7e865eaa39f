package check_availability

import (
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// Request describes the candidate window to check.
type Request struct {
	LocationID  int64
	ResourceIDs []int64
	Window      domain.TimeWindow
	ExcludeID   *int64 // reservation being edited, ignored in overlap checks
}

// Response carries the conflicts found and the alternatives to offer.
// Degraded marks a failed-open check: the collaborator could not answer,
// so zero conflicts were reported and the commit-time re-check is the
// only guarantee left.
type Response struct {
	Conflicts   []domain.Conflict
	Suggestions []domain.Suggestion
	Degraded    bool
}

// HasConflicts reports whether anything blocks the candidate window.
func (r *Response) HasConflicts() bool {
	return len(r.Conflicts) > 0
}
