package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, tenantID, id int64, notes string) error
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) ([]domain.Reservation, error)
	GetByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64][]domain.Reservation, error)
}

// Notifier интерфейс для публикации событий о бронированиях
type Notifier interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking)
	BookingStatusChanged(ctx context.Context, booking *domain.Booking)
}

// RealTimeProvider интерфейс для получения текущего времени
type RealTimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
