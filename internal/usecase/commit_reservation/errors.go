package commit_reservation

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("commit_reservation: invalid input data")

	// ErrWindowTaken is returned when the commit-time re-check finds an
	// overlap the draft did not know about
	ErrWindowTaken = errors.New("commit_reservation: window is no longer available")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("commit_reservation: internal error")
)
