package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Config настройки политики автоподтверждения
type Config struct {
	// AutoConfirmAIOnly ограничивает автоподтверждение бронированиями
	// от AI ассистента. При false политика применяется к любому источнику.
	AutoConfirmAIOnly bool
}

// Request модель запроса на создание бронирования
type Request struct {
	TenantID int64
	Title    string
	Notes    string

	StartTime time.Time
	EndTime   time.Time

	Customer domain.CustomerRef
	Services []domain.ServiceRef

	// Source пустое значение трактуется как manual
	Source domain.BookingSource

	// Метаданные AI ассистента (для Source == ai_assistant)
	AISessionID  *uuid.UUID
	AIMessageID  *uuid.UUID
	AIConfidence *float64
}

// ReservationLine строка резервации в ответе
type ReservationLine struct {
	ID          int64
	ServiceID   int64
	ServiceName string
	Quantity    int
	Status      string
	UnitPrice   float64
	TotalPrice  float64
}

// ResolvedService услуга, успешно разрешенная из запроса
type ResolvedService struct {
	ID       int64
	Name     string
	Quantity int
}

// ConflictInfo конфликт, обнаруженный при создании бронирования
type ConflictInfo struct {
	ID                   int64
	Type                 string
	Severity             string
	ServiceID            *int64
	ConflictingBookingID *int64
	Description          string
	SuggestedSlots       []domain.SuggestedSlot
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	TenantID   int64
	CustomerID int64
	Title      string

	StartTime time.Time
	EndTime   time.Time

	Status string
	Source string

	Notes      string
	TotalPrice float64

	// AutoConfirmed признак, что статус confirmed выставлен политикой
	// автоподтверждения, а не оператором
	AutoConfirmed bool

	Reservations []ReservationLine

	// Разрешенные и отброшенные услуги из запроса
	ResolvedServices []ResolvedService
	DroppedServices  []string

	// Конфликты, записанные в журнал при создании
	Conflicts []ConflictInfo

	CreatedAt time.Time
	UpdatedAt time.Time
}
