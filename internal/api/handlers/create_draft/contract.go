package create_draft

import (
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft/models"
)

type DraftManager interface {
	Create(req *models.CreateRequest) (*draft.Controller, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
