package valid_durations

import (
	"context"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

type DurationsUseCase interface {
	DurationsFor(ctx context.Context, mode domain.Mode, tierID *string) ([]int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
