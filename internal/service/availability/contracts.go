package availability

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	ListByIDs(ctx context.Context, tenantID int64, ids []int64) ([]domain.ServiceItem, error)
	ListActiveByTenant(ctx context.Context, tenantID int64, category *string) ([]domain.ServiceItem, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	FindOverlappingForServices(ctx context.Context, tenantID int64, serviceIDs []int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.ReservationUsage, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
