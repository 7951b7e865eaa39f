package domain

// Quantization and per-mode duration bounds, in minutes.
const (
	SlotUnitMinutes = 30

	MinBookingMinutes = SlotUnitMinutes
	MaxBookingMinutes = 480

	MinEventMinutes = 60
	MaxEventMinutes = 480

	MinClassMinutes = 60
	MaxClassMinutes = 240

	// Administrative holds may span a full day.
	MaxAdminHoldMinutes = 1440
)

// Input size limits.
const (
	MaxResourcesPerReservation = 12
	MaxAttendees               = 200
	MaxEventNameLength         = 200
	MaxReasonLength            = 500
)

// DefaultCurrency applies when configuration does not override it.
const DefaultCurrency = "CAD"

// Time format constants.
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses lists statuses excluded from overlap detection.
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}

// ActiveStatuses lists statuses that occupy their window.
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusCompleted,
}
