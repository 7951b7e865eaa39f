package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// UseCase answers whether a candidate window is free and, when it is not,
// which nearby windows to offer instead.
type UseCase struct {
	availability AvailabilityService
	timeout      time.Duration
	timer        TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase creates the availability check use case. timeout bounds each
// collaborator query; an exceeded bound fails open.
func NewUseCase(availability AvailabilityService, timeout time.Duration, timer TimeProvider, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		timeout:      timeout,
		timer:        timer,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute queries the availability collaborator for overlaps. Collaborator
// failures never block the user: the check degrades to zero conflicts and
// the store re-validates authoritatively at commit time.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	queryCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	conflicts, err := uc.availability.CheckConflicts(queryCtx, req.LocationID, req.ResourceIDs, req.Window, req.ExcludeID)
	if err != nil {
		// Fail open. The caller keeps editing; the serializable commit
		// check is the authoritative gate.
		if ctx.Err() != nil {
			// The owning draft was torn down; nothing to report.
			return nil, ctx.Err()
		}
		uc.logger.Error("CheckAvailability: location=%d check failed, degrading to zero conflicts: %v",
			req.LocationID, err)
		uc.metrics.IncAvailabilityDegraded()
		return &Response{Degraded: true}, nil
	}

	resp := &Response{Conflicts: conflicts}
	if len(conflicts) > 0 {
		resp.Suggestions = uc.buildSuggestions(ctx, req)
		uc.logger.Info("CheckAvailability: location=%d window=%s conflicts=%d suggestions=%d",
			req.LocationID, req.Window.Start.Format(time.RFC3339), len(conflicts), len(resp.Suggestions))
	}
	return resp, nil
}

func validateRequest(req *Request) error {
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: location id is required", ErrInvalidInput)
	}
	if len(req.ResourceIDs) == 0 {
		return fmt.Errorf("%w: at least one resource is required", ErrInvalidInput)
	}
	if len(req.ResourceIDs) > domain.MaxResourcesPerReservation {
		return fmt.Errorf("%w: too many resources", ErrInvalidInput)
	}
	if !req.Window.End.After(req.Window.Start) {
		return fmt.Errorf("%w: window end must be after start", ErrInvalidInput)
	}
	return nil
}
