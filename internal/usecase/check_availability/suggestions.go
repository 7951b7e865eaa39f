package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// suggestionStep is how far the earlier/later alternatives shift.
const suggestionStep = domain.SlotUnitMinutes * time.Minute

// buildSuggestions assembles the alternatives offered alongside conflicts:
// the same window 30 minutes earlier (unless that lands in the past), 30
// minutes later, and the first forward gap that fits the requested
// duration. The next-available lookup is best-effort and omitted silently
// when the collaborator cannot answer.
func (uc *UseCase) buildSuggestions(ctx context.Context, req *Request) []domain.Suggestion {
	suggestions := make([]domain.Suggestion, 0, 3)
	now := uc.timer.Now()

	if earlier := req.Window.ShiftBy(-suggestionStep); !earlier.Start.Before(now) {
		suggestions = append(suggestions, domain.Suggestion{
			Kind:   domain.SuggestionEarlier,
			Label:  "30 minutes earlier",
			Window: earlier,
		})
	}

	suggestions = append(suggestions, domain.Suggestion{
		Kind:   domain.SuggestionLater,
		Label:  "30 minutes later",
		Window: req.Window.ShiftBy(suggestionStep),
	})

	queryCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	next, err := uc.availability.NextAvailable(queryCtx, req.LocationID, req.ResourceIDs,
		req.Window.DurationMinutes(), req.Window.Start)
	if err != nil {
		uc.logger.Warn("CheckAvailability: next-available lookup failed, omitting suggestion: %v", err)
		return suggestions
	}
	if next != nil && !next.Start.Before(now) {
		suggestions = append(suggestions, domain.Suggestion{
			Kind:   domain.SuggestionNextAvailable,
			Label:  fmt.Sprintf("Next opening at %s", next.Start.Format("15:04")),
			Window: *next,
		})
	}

	return suggestions
}
