package validate_window

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	crmClient "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/integrations/crmservice"
)

// UseCase validates candidate time windows against tier and mode rules.
type UseCase struct {
	tiers    TierDirectory
	schedule domain.WeekSchedule
	loc      *time.Location
	timer    TimeProvider
	logger   Logger
}

// NewUseCase creates the window validation use case.
func NewUseCase(tiers TierDirectory, schedule domain.WeekSchedule, loc *time.Location, timer TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		tiers:    tiers,
		schedule: schedule,
		loc:      loc,
		timer:    timer,
		logger:   logger,
	}
}

// Execute resolves the tier, then validates the candidate window. Only
// collaborator failures surface as errors; rule violations come back as
// an invalid Result.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (Result, error) {
	if !req.Mode.Valid() {
		return Result{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, string(req.Mode))
	}
	if req.Window.IsZero() {
		return Result{}, fmt.Errorf("%w: window is required", ErrInvalidInput)
	}

	var tier *domain.CustomerTier
	if req.TierID != nil {
		resolved, err := uc.tiers.GetTier(ctx, *req.TierID)
		if err != nil {
			if errors.Is(err, crmClient.ErrTierNotFound) {
				uc.logger.Warn("ValidateWindow: tier id=%s not found", *req.TierID)
				return Result{}, ErrTierNotFound
			}
			uc.logger.Error("ValidateWindow: failed to get tier id=%s: %v", *req.TierID, err)
			return Result{}, fmt.Errorf("%w: %v", ErrTierUnavailable, err)
		}
		tier = resolved.ToDomain()
	}

	result := uc.Validate(req.Window, tier, req.Mode)
	if !result.Valid {
		uc.logger.Warn("ValidateWindow: mode=%s duration=%dm rejected: %s",
			req.Mode, req.Window.DurationMinutes(), result.Reason)
	}
	return result, nil
}

// Validate applies every rule to an already-resolved tier. The draft
// controller calls this synchronously on each field change.
func (uc *UseCase) Validate(window domain.TimeWindow, tier *domain.CustomerTier, mode domain.Mode) Result {
	if r := checkDuration(window, tier, mode); !r.Valid {
		return r
	}

	if window.Start.Before(uc.timer.Now()) {
		return invalid("start time is in the past")
	}

	if mode.WithinOperatingHours() {
		if r := checkOperatingHours(window, uc.schedule, uc.loc); !r.Valid {
			return r
		}
	}
	return valid
}

// DurationsFor resolves the tier when referenced and returns the valid
// duration choices for the mode.
func (uc *UseCase) DurationsFor(ctx context.Context, mode domain.Mode, tierID *string) ([]int, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, string(mode))
	}

	var tier *domain.CustomerTier
	if tierID != nil {
		resolved, err := uc.tiers.GetTier(ctx, *tierID)
		if err != nil {
			if errors.Is(err, crmClient.ErrTierNotFound) {
				return nil, ErrTierNotFound
			}
			uc.logger.Error("ValidateWindow: failed to get tier id=%s: %v", *tierID, err)
			return nil, fmt.Errorf("%w: %v", ErrTierUnavailable, err)
		}
		tier = resolved.ToDomain()
	}

	return ValidDurations(tier, mode), nil
}
