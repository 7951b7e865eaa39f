package submit_draft

import (
	"github.com/google/uuid"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft"
)

type DraftManager interface {
	Get(id uuid.UUID) (*draft.Controller, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
