package list_conflicts

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/service/conflicts/models"
)

type ConflictService interface {
	List(ctx context.Context, req *models.ListConflictsRequest) (*models.ConflictListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
