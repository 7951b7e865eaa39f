package delete_draft

import (
	"github.com/google/uuid"
)

type DraftManager interface {
	Close(id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
