package conflicts

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// ConflictRepository интерфейс репозитория журнала конфликтов
type ConflictRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.ConflictRecord, error)
	ListWithFilter(ctx context.Context, filter domain.ConflictsFilter) ([]domain.ConflictRecord, error)
	UpdateResolution(ctx context.Context, tenantID, id int64, status domain.ResolutionStatus, notes, resolvedBy string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
