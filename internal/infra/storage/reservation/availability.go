package reservation

import (
	"context"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// searchHorizon bounds how far forward the next-available scan looks.
const searchHorizon = 14 * 24 * time.Hour

// CheckConflicts implements the availability collaborator port: it maps
// overlapping rows into display-ready conflicts, partitioned between
// customer reservations and administrative blocks.
func (r *Repository) CheckConflicts(ctx context.Context, locationID int64, resourceIDs []int64, window domain.TimeWindow, excludeID *int64) ([]domain.Conflict, error) {
	overlapping, err := r.FindOverlapping(ctx, locationID, resourceIDs, window, excludeID)
	if err != nil {
		return nil, err
	}

	conflicts := make([]domain.Conflict, 0, len(overlapping))
	for _, res := range overlapping {
		conflicts = append(conflicts, domain.Conflict{
			ReservationID: res.ID,
			Kind:          res.ConflictKind(),
			Label:         res.DisplayLabel(),
			Window:        res.Window,
			ResourceIDs:   res.SharedResources(resourceIDs),
		})
	}
	return conflicts, nil
}

// NextAvailable scans forward from after for the first slot-aligned gap of
// at least durationMinutes across the given resources. Returns nil when
// nothing opens up within the search horizon.
func (r *Repository) NextAvailable(ctx context.Context, locationID int64, resourceIDs []int64, durationMinutes int, after time.Time) (*domain.TimeWindow, error) {
	until := after.Add(searchHorizon)
	rows, err := r.FindActiveFrom(ctx, locationID, resourceIDs, after, until)
	if err != nil {
		return nil, err
	}

	window := nextGap(rows, after, until, durationMinutes)
	return window, nil
}

// nextGap walks reservations ordered by start time and returns the first
// gap that fits the duration, with the start aligned up to the slot grid.
func nextGap(rows []*domain.Reservation, after, until time.Time, durationMinutes int) *domain.TimeWindow {
	duration := time.Duration(durationMinutes) * time.Minute
	candidate := alignToSlot(after)

	for _, row := range rows {
		if !row.Window.Start.Before(candidate.Add(duration)) {
			break
		}
		if row.Window.End.After(candidate) {
			candidate = alignToSlot(row.Window.End)
		}
	}

	if candidate.Add(duration).After(until) {
		return nil
	}
	return &domain.TimeWindow{Start: candidate, End: candidate.Add(duration)}
}

// alignToSlot rounds t up to the next slot boundary.
func alignToSlot(t time.Time) time.Time {
	unit := time.Duration(domain.SlotUnitMinutes) * time.Minute
	aligned := t.Truncate(unit)
	if aligned.Before(t) {
		aligned = aligned.Add(unit)
	}
	return aligned
}
