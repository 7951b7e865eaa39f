package draft

import "errors"

var (
	// ErrDraftNotFound is returned when no live draft matches the id
	ErrDraftNotFound = errors.New("draft: draft not found")

	// ErrDraftClosed is returned when the draft was torn down or already
	// confirmed
	ErrDraftClosed = errors.New("draft: draft is closed")

	// ErrNotSubmittable is returned when the submit gate rejects the draft
	ErrNotSubmittable = errors.New("draft: draft is not ready to submit")

	// ErrSubmitInProgress is returned when a submit is already running
	ErrSubmitInProgress = errors.New("draft: submission already in progress")

	// ErrSubmitFailed wraps commit failures; the draft stays editable and
	// the submit may be retried
	ErrSubmitFailed = errors.New("draft: submission failed")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("draft: invalid input data")
)
