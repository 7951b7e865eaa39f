package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/dbmetrics"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/psqlbuilder"
)

const reservationsTable = "reservations"

var reservationColumns = []string{
	"id",
	"location_id",
	"resource_ids",
	"mode",
	"start_at",
	"end_at",
	"status",
	"customer_ref",
	"customer_name",
	"tier_id",
	"event_name",
	"attendee_count",
	"reason",
	"promo_code",
	"total_amount",
	"currency",
	"confirmation_code",
	"created_at",
	"updated_at",
}

// statusValues converts statuses into the string form squirrel needs to
// render a status IN (...) predicate.
func statusValues(statuses []domain.ReservationStatus) []string {
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	return values
}

// Repository persists committed reservations. Drafts never reach this
// layer; they live in memory until submitted.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a reservation. When the context carries an open
// transaction (placed by a transaction manager) the insert joins it, which
// is how the commit-time availability re-check stays atomic.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(reservationsTable).
		Columns(
			"location_id",
			"resource_ids",
			"mode",
			"start_at",
			"end_at",
			"status",
			"customer_ref",
			"customer_name",
			"tier_id",
			"event_name",
			"attendee_count",
			"reason",
			"promo_code",
			"total_amount",
			"currency",
			"confirmation_code",
		).
		Values(
			reservation.LocationID,
			pq.Array(reservation.ResourceIDs),
			string(reservation.Mode),
			reservation.Window.Start,
			reservation.Window.End,
			string(reservation.Status),
			reservation.CustomerRef,
			reservation.CustomerName,
			reservation.TierID,
			reservation.EventName,
			reservation.AttendeeCount,
			reservation.Reason,
			reservation.PromoCode,
			reservation.TotalAmount,
			reservation.Currency,
			reservation.ConfirmationCode,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID fetches one reservation.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// FindOverlapping returns active reservations at the location that truly
// intersect the window on at least one of the given resources. Strict
// inequalities keep back-to-back reservations from counting as overlap.
func (r *Repository) FindOverlapping(ctx context.Context, locationID int64, resourceIDs []int64, window domain.TimeWindow, excludeID *int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"status": statusValues(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_at": window.End}).
		Where(squirrel.Gt{"end_at": window.Start}).
		Where(squirrel.Expr("resource_ids && ?", pq.Array(resourceIDs))).
		OrderBy("start_at ASC")

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "FindOverlapping")
}

// FindActiveFrom returns active reservations on the given resources whose
// windows touch the [after, until) span, ordered by start time. The
// forward gap scan for next-available windows runs over this result.
func (r *Repository) FindActiveFrom(ctx context.Context, locationID int64, resourceIDs []int64, after, until time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"status": statusValues(domain.ActiveStatuses)}).
		Where(squirrel.Gt{"end_at": after}).
		Where(squirrel.Lt{"start_at": until}).
		Where(squirrel.Expr("resource_ids && ?", pq.Array(resourceIDs))).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveFrom - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "FindActiveFrom")
}

func (r *Repository) queryReservations(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]*domain.Reservation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}
	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation domain.Reservation
		resourceIDs pq.Int64Array
		mode        string
		status      string
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.LocationID,
		&resourceIDs,
		&mode,
		&reservation.Window.Start,
		&reservation.Window.End,
		&status,
		&reservation.CustomerRef,
		&reservation.CustomerName,
		&reservation.TierID,
		&reservation.EventName,
		&reservation.AttendeeCount,
		&reservation.Reason,
		&reservation.PromoCode,
		&reservation.TotalAmount,
		&reservation.Currency,
		&reservation.ConfirmationCode,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}

	reservation.ResourceIDs = []int64(resourceIDs)
	reservation.Mode = domain.Mode(mode)
	reservation.Status = domain.ReservationStatus(status)
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}
