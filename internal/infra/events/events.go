package events

import "time"

// ReservationConfirmedEvent is published after a reservation commits.
// The notification subsystem consumes it; delivery failures never affect
// the booking flow.
type ReservationConfirmedEvent struct {
	ReservationID    int64     `json:"reservation_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	LocationID       int64     `json:"location_id"`
	ResourceIDs      []int64   `json:"resource_ids"`
	Mode             string    `json:"mode"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	CustomerRef      *string   `json:"customer_ref,omitempty"`
	TotalAmount      float64   `json:"total_amount"`
	Currency         string    `json:"currency"`
	ConfirmedAt      time.Time `json:"confirmed_at"`
}
