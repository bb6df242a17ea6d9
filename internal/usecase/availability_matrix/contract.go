package availability_matrix

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// AvailabilityCalculator интерфейс калькулятора доступности
type AvailabilityCalculator interface {
	Matrix(ctx context.Context, tenantID int64, from, to time.Time, serviceIDs []int64, category *string) (*domain.AvailabilityMatrix, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
