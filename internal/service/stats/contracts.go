package stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountContainedInPeriod(ctx context.Context, tenantID int64, from, to time.Time, status *domain.BookingStatus, source *domain.BookingSource) (int64, error)
	CountDistinctCustomersSince(ctx context.Context, tenantID int64, since time.Time) (int64, error)
	ListRecentBySource(ctx context.Context, tenantID int64, source domain.BookingSource, from, to time.Time, limit int) ([]*domain.Booking, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64][]domain.Reservation, error)
}

// ConflictRepository интерфейс репозитория журнала конфликтов
type ConflictRepository interface {
	CountUnresolvedSince(ctx context.Context, tenantID int64, since time.Time) (int64, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	CountActiveByTenant(ctx context.Context, tenantID int64) (int64, error)
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
