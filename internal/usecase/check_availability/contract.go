package check_availability

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// AvailabilityCalculator интерфейс калькулятора доступности
type AvailabilityCalculator interface {
	CheckByIDs(ctx context.Context, tenantID int64, serviceIDs []int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.ServiceAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
