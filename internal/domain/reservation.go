package domain

import (
	"fmt"
	"time"
)

// Mode distinguishes what a reservation occupies a bay for. Customer-facing
// modes (booking/event/class) are priced and quantized; block and
// maintenance are administrative holds with neither.
type Mode string

const (
	ModeBooking     Mode = "booking"
	ModeBlock       Mode = "block"
	ModeMaintenance Mode = "maintenance"
	ModeEvent       Mode = "event"
	ModeClass       Mode = "class"
)

// ParseMode converts a wire string into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("domain: unknown reservation mode %q", s)
	}
	return m, nil
}

// Valid reports whether the mode is one of the known variants.
func (m Mode) Valid() bool {
	switch m {
	case ModeBooking, ModeBlock, ModeMaintenance, ModeEvent, ModeClass:
		return true
	}
	return false
}

// Priced reports whether the mode produces a price breakdown.
func (m Mode) Priced() bool {
	switch m {
	case ModeBooking, ModeEvent, ModeClass:
		return true
	}
	return false
}

// Quantized reports whether durations must be multiples of SlotUnitMinutes.
func (m Mode) Quantized() bool {
	return m.Priced()
}

// WithinOperatingHours reports whether windows must fit the facility
// schedule. Administrative holds may cover closed hours.
func (m Mode) WithinOperatingHours() bool {
	return m.Priced()
}

// MinDurationMinutes returns the shortest legal duration for the mode.
func (m Mode) MinDurationMinutes() int {
	switch m {
	case ModeEvent:
		return MinEventMinutes
	case ModeClass:
		return MinClassMinutes
	case ModeBlock, ModeMaintenance:
		return 1
	default:
		return MinBookingMinutes
	}
}

// MaxDurationMinutes returns the longest legal duration for the mode,
// before any tier cap is applied.
func (m Mode) MaxDurationMinutes() int {
	switch m {
	case ModeEvent:
		return MaxEventMinutes
	case ModeClass:
		return MaxClassMinutes
	case ModeBlock, ModeMaintenance:
		return MaxAdminHoldMinutes
	default:
		return MaxBookingMinutes
	}
}

// Field names a draft attribute a mode may require before submission.
type Field string

const (
	FieldCustomer  Field = "customer"
	FieldReason    Field = "reason"
	FieldEventName Field = "eventName"
)

// RequiredFields returns the mode-specific attributes that must be present
// before a draft in this mode may be submitted. Shared requirements
// (location, resources, window) apply to every mode and are checked
// separately.
func (m Mode) RequiredFields() []Field {
	switch m {
	case ModeBooking:
		return []Field{FieldCustomer}
	case ModeBlock, ModeMaintenance:
		return []Field{FieldReason}
	case ModeEvent, ModeClass:
		return []Field{FieldEventName}
	}
	return nil
}

// ReservationStatus is the lifecycle state of a committed reservation.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a committed hold on one or more bays. Drafts never take
// this form; they live in memory until submitted.
type Reservation struct {
	ID          int64
	LocationID  int64
	ResourceIDs []int64
	Mode        Mode
	Window      TimeWindow
	Status      ReservationStatus

	CustomerRef   *string
	CustomerName  *string
	TierID        *string
	EventName     *string
	AttendeeCount int
	Reason        *string
	PromoCode     *string

	TotalAmount      float64
	Currency         string
	ConfirmationCode string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the reservation still occupies its window.
func (r *Reservation) IsActive() bool {
	for _, status := range InactiveStatuses {
		if r.Status == status {
			return false
		}
	}
	return true
}

// SharesResource reports whether the reservation holds any of the given
// resource ids.
func (r *Reservation) SharesResource(ids []int64) bool {
	for _, mine := range r.ResourceIDs {
		for _, theirs := range ids {
			if mine == theirs {
				return true
			}
		}
	}
	return false
}

// SharedResources returns the intersection of the reservation's resources
// with the given ids, preserving the reservation's order.
func (r *Reservation) SharedResources(ids []int64) []int64 {
	shared := make([]int64, 0, len(r.ResourceIDs))
	for _, mine := range r.ResourceIDs {
		for _, theirs := range ids {
			if mine == theirs {
				shared = append(shared, mine)
				break
			}
		}
	}
	return shared
}

// ConflictKind classifies how this reservation presents when it blocks a
// candidate window.
func (r *Reservation) ConflictKind() ConflictKind {
	if r.Mode == ModeBlock || r.Mode == ModeMaintenance {
		return ConflictAdminBlock
	}
	return ConflictReservation
}

// DisplayLabel returns what conflicting customers see: the customer name
// for bookings, the hold reason for administrative modes.
func (r *Reservation) DisplayLabel() string {
	if r.Mode == ModeBlock || r.Mode == ModeMaintenance {
		if r.Reason != nil && *r.Reason != "" {
			return *r.Reason
		}
		return "Blocked"
	}
	if r.CustomerName != nil && *r.CustomerName != "" {
		return *r.CustomerName
	}
	return "Guest"
}
