package conflictdetect

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// AvailabilityCalculator интерфейс расчета занятости услуг
type AvailabilityCalculator interface {
	Evaluate(ctx context.Context, tenantID int64, requested []domain.RequestedService, window domain.TimeWindow, excludeBookingID *int64) ([]domain.ServiceAvailability, error)
}

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.CalendarSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
