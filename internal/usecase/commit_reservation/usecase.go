package commit_reservation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// UseCase turns a submitted draft into a committed reservation. The
// overlap re-check and the insert run in one serializable transaction, so
// two racing submits for the same window cannot both land.
type UseCase struct {
	reservations ReservationRepository
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewUseCase creates the commit use case.
func NewUseCase(reservations ReservationRepository, txManager TransactionManager, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservations,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute re-checks availability and inserts the reservation atomically.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitReservation: location=%d mode=%s resources=%d",
		req.LocationID, req.Mode, len(req.ResourceIDs))

	// 1. Validate input.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitReservation: validation failed: %v", err)
		return nil, err
	}

	reservation := req.toReservation()
	reservation.ConfirmationCode = newConfirmationCode()

	// 2. Re-check and insert under serializable isolation. The draft's
	// debounced availability checks are advisory; this is the gate.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.reservations.FindOverlapping(txCtx,
			req.LocationID, req.ResourceIDs, req.Window, nil)
		if err != nil {
			return fmt.Errorf("%w: overlap re-check: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			return fmt.Errorf("%w: %d overlapping reservation(s)", ErrWindowTaken, len(overlapping))
		}

		created, err := uc.reservations.Create(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: create reservation: %v", ErrInternal, err)
		}
		reservation = created
		return nil
	})
	if err != nil {
		uc.logger.Warn("CommitReservation: location=%d commit failed: %v", req.LocationID, err)
		return nil, err
	}

	uc.metrics.IncReservationsCommitted(string(req.Mode))
	uc.logger.Info("CommitReservation: committed id=%d confirmation=%s",
		reservation.ID, reservation.ConfirmationCode)

	return &Response{Reservation: reservation}, nil
}

func (req *Request) toReservation() *domain.Reservation {
	return &domain.Reservation{
		LocationID:    req.LocationID,
		ResourceIDs:   req.ResourceIDs,
		Mode:          req.Mode,
		Window:        req.Window,
		Status:        domain.StatusConfirmed,
		CustomerRef:   req.CustomerRef,
		CustomerName:  req.CustomerName,
		TierID:        req.TierID,
		EventName:     req.EventName,
		AttendeeCount: req.AttendeeCount,
		Reason:        req.Reason,
		PromoCode:     req.PromoCode,
		TotalAmount:   req.TotalAmount,
		Currency:      req.Currency,
	}
}

// newConfirmationCode builds the customer-facing booking reference.
func newConfirmationCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "CHB-" + id[:8]
}

func validateRequest(req *Request) error {
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: location id is required", ErrInvalidInput)
	}
	if len(req.ResourceIDs) == 0 {
		return fmt.Errorf("%w: at least one resource is required", ErrInvalidInput)
	}
	if !req.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, string(req.Mode))
	}
	if !req.Window.End.After(req.Window.Start) {
		return fmt.Errorf("%w: window end must be after start", ErrInvalidInput)
	}
	return nil
}
