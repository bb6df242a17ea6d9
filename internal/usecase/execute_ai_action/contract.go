package execute_ai_action

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	bookingmodels "github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
)

// BookingCreator интерфейс создания бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// BookingCanceller интерфейс отмены бронирования
type BookingCanceller interface {
	Cancel(ctx context.Context, req *bookingmodels.CancelBookingRequest) (*bookingmodels.BookingResponse, error)
}

// AvailabilityCalculator интерфейс калькулятора доступности
type AvailabilityCalculator interface {
	CheckByIDs(ctx context.Context, tenantID int64, serviceIDs []int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.ServiceAvailability, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	FindActiveByName(ctx context.Context, tenantID int64, name string) (*domain.ServiceItem, error)
	ListActiveByTenant(ctx context.Context, tenantID int64, category *string) ([]domain.ServiceItem, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
