package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	crmClient "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/integrations/crmservice"
)

// UseCase computes price quotes for candidate reservations.
type UseCase struct {
	tiers  TierDirectory
	promos PromoDirectory
	rates  domain.PricingRates
	logger Logger
}

// NewUseCase creates the quoting use case.
func NewUseCase(tiers TierDirectory, promos PromoDirectory, rates domain.PricingRates, logger Logger) *UseCase {
	return &UseCase{
		tiers:  tiers,
		promos: promos,
		rates:  rates,
		logger: logger,
	}
}

// Execute resolves the tier and promo collaborators, then prices the
// candidate window.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: mode=%s, duration=%dm, resources=%d, attendees=%d",
		req.Mode, req.Window.DurationMinutes(), req.ResourceCount, req.AttendeeCount)

	// 1. Validate input.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the customer tier when one is referenced.
	var tier *domain.CustomerTier
	if req.TierID != nil {
		resolved, err := uc.tiers.GetTier(ctx, *req.TierID)
		if err != nil {
			if errors.Is(err, crmClient.ErrTierNotFound) {
				uc.logger.Warn("QuotePrice: tier id=%s not found", *req.TierID)
				return nil, ErrTierNotFound
			}
			uc.logger.Error("QuotePrice: failed to get tier id=%s: %v", *req.TierID, err)
			return nil, fmt.Errorf("%w: %v", ErrTierUnavailable, err)
		}
		tier = resolved.ToDomain()
	}

	// 3. Booking mode cannot be priced without a tier rate.
	if req.Mode == domain.ModeBooking && tier == nil {
		uc.logger.Warn("QuotePrice: booking quote requested without tier")
		return nil, ErrTierRequired
	}

	// 4. Resolve the promo code when one is supplied.
	var promo *domain.DiscountCode
	if req.PromoCode != nil && *req.PromoCode != "" {
		resolved, err := uc.promos.GetPromo(ctx, *req.PromoCode)
		if err != nil {
			if errors.Is(err, crmClient.ErrPromoNotFound) {
				uc.logger.Warn("QuotePrice: promo code=%s not found", *req.PromoCode)
				return nil, ErrPromoNotFound
			}
			uc.logger.Error("QuotePrice: failed to resolve promo code=%s: %v", *req.PromoCode, err)
			return nil, fmt.Errorf("%w: failed to resolve promo: %v", ErrInternal, err)
		}
		if !resolved.Active {
			uc.logger.Warn("QuotePrice: promo code=%s is inactive", *req.PromoCode)
			return nil, ErrPromoInactive
		}

		promo, err = resolved.ToDomain()
		if err != nil {
			uc.logger.Error("QuotePrice: promo code=%s has invalid type: %v", *req.PromoCode, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 5. Price the candidate.
	breakdown, err := Compute(req.Mode, req.Window, tier, req.ResourceCount, req.AttendeeCount, promo, uc.rates)
	if err != nil {
		uc.logger.Warn("QuotePrice: compute failed: %v", err)
		return nil, err
	}

	uc.logger.Info("QuotePrice: mode=%s total=%.2f %s (%d lines)",
		req.Mode, breakdown.TotalAmount, breakdown.Currency, len(breakdown.Lines))

	return &Response{
		Lines:       breakdown.Lines,
		TotalAmount: breakdown.TotalAmount,
		DepositDue:  breakdown.DepositDue(),
		Currency:    breakdown.Currency,
	}, nil
}

// QuoteResolved prices a candidate whose collaborator lookups already
// happened. The draft controller uses this on every synchronous recompute.
func (uc *UseCase) QuoteResolved(
	mode domain.Mode,
	window domain.TimeWindow,
	tier *domain.CustomerTier,
	resourceCount int,
	attendeeCount int,
	promo *domain.DiscountCode,
) (*domain.PriceBreakdown, error) {
	return Compute(mode, window, tier, resourceCount, attendeeCount, promo, uc.rates)
}

func validateRequest(req *Request) error {
	if !req.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, string(req.Mode))
	}
	if req.Window.IsZero() {
		return fmt.Errorf("%w: window is required", ErrInvalidInput)
	}
	if !req.Window.End.After(req.Window.Start) {
		return fmt.Errorf("%w: window end must be after start", ErrInvalidInput)
	}
	if req.ResourceCount < 0 || req.ResourceCount > domain.MaxResourcesPerReservation {
		return fmt.Errorf("%w: resource count out of range", ErrInvalidInput)
	}
	if req.AttendeeCount < 0 || req.AttendeeCount > domain.MaxAttendees {
		return fmt.Errorf("%w: attendee count out of range", ErrInvalidInput)
	}
	return nil
}
