package create_booking

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	CreateBatch(ctx context.Context, bookingID int64, reservations []domain.Reservation) ([]domain.Reservation, error)
}

// ConflictRepository интерфейс журнала конфликтов
type ConflictRepository interface {
	CreateBatch(ctx context.Context, records []domain.ConflictRecord) ([]domain.ConflictRecord, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, tenantID int64, email string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetActiveByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error)
	FindActiveByName(ctx context.Context, tenantID int64, name string) (*domain.ServiceItem, error)
	LockByIDs(ctx context.Context, tenantID int64, ids []int64) ([]domain.ServiceItem, error)
}

// SettingsRepository интерфейс настроек календаря тенанта
type SettingsRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.CalendarSettings, error)
}

// ConflictDetector интерфейс детектора конфликтов
type ConflictDetector interface {
	Detect(ctx context.Context, tenantID int64, window domain.TimeWindow, requested []domain.RequestedService, excludeBookingID *int64) ([]domain.ConflictRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс издателя событий о созданных бронированиях.
// Публикация fire-and-forget, ошибки не возвращаются.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking, conflicts []domain.ConflictRecord)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
