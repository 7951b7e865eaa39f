package domain

// ConflictKind splits what blocks a candidate window: another customer's
// reservation or an administrative hold.
type ConflictKind string

const (
	ConflictReservation ConflictKind = "reservation"
	ConflictAdminBlock  ConflictKind = "adminBlock"
)

// Conflict describes one existing reservation overlapping a candidate
// window on at least one shared resource.
type Conflict struct {
	ReservationID int64
	Kind          ConflictKind
	Label         string // customer display name or block reason
	Window        TimeWindow
	ResourceIDs   []int64 // the shared resources
}

// SuggestionKind orders alternative windows by how they relate to the
// candidate.
type SuggestionKind string

const (
	SuggestionEarlier       SuggestionKind = "earlier"
	SuggestionLater         SuggestionKind = "later"
	SuggestionNextAvailable SuggestionKind = "nextAvailable"
)

// Suggestion is an alternative window offered when conflicts exist.
type Suggestion struct {
	Kind   SuggestionKind
	Label  string
	Window TimeWindow
}
