package execute_ai_action

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
)

// Поддерживаемые виды действий ассистента
const (
	ActionCreateBooking      = "create_booking"
	ActionCancelBooking      = "cancel_booking"
	ActionCheckAvailability  = "check_availability"
	ActionCheckServiceExists = "check_service_exists"
)

// CustomerInfo данные клиента из параметров действия
type CustomerInfo struct {
	ID    *int64
	Name  string
	Email string
	Phone string
}

// ServiceSelection ссылка на услугу из параметров действия
type ServiceSelection struct {
	ID       *int64
	Name     *string
	Quantity int
}

// CreateBookingParams параметры действия create_booking
type CreateBookingParams struct {
	Title     string
	Notes     string
	StartTime time.Time
	EndTime   time.Time
	Customer  CustomerInfo
	Services  []ServiceSelection
}

// CancelBookingParams параметры действия cancel_booking
type CancelBookingParams struct {
	BookingID int64
	Reason    string
}

// CheckAvailabilityParams параметры действия check_availability.
// Услуги задаются именами, как их формулирует ассистент.
type CheckAvailabilityParams struct {
	ServiceNames []string
	StartTime    time.Time
	EndTime      time.Time
}

// CheckServiceExistsParams параметры действия check_service_exists
type CheckServiceExistsParams struct {
	ServiceName string
}

// Request модель запроса на выполнение действия ассистента.
// Заполняется только блок параметров, соответствующий Action.
type Request struct {
	TenantID int64
	Action   string

	SessionID  *uuid.UUID
	MessageID  *uuid.UUID
	Confidence *float64

	CreateBooking      *CreateBookingParams
	CancelBooking      *CancelBookingParams
	CheckAvailability  *CheckAvailabilityParams
	CheckServiceExists *CheckServiceExistsParams
}

// ServiceStatus состояние одной услуги в отчете о доступности
type ServiceStatus struct {
	ServiceID         int64
	Name              string
	Category          string
	Available         bool
	QuantityAvailable int
	Reason            string
}

// AvailabilityReport результат действия check_availability
type AvailabilityReport struct {
	StartTime    time.Time
	EndTime      time.Time
	Available    []ServiceStatus
	Unavailable  []ServiceStatus
	TotalChecked int
}

// ServiceInfo найденная услуга в отчете check_service_exists
type ServiceInfo struct {
	ID               int64
	Name             string
	Category         string
	AvailabilityType string
	Quantity         int
	BasePrice        float64
}

// ServiceExistsReport результат действия check_service_exists
type ServiceExistsReport struct {
	Exists  bool
	Service *ServiceInfo

	// Suggestions имена активных услуг тенанта, когда точного
	// совпадения нет
	Suggestions []string
}

// CancelledBooking результат действия cancel_booking
type CancelledBooking struct {
	BookingID int64
	Status    string
}

// Response модель результата действия. Бизнес-отказы выражаются
// через Success=false с сообщением, а не через ошибку.
type Response struct {
	Success bool
	Message string

	Booking      *create_booking.Response
	Cancelled    *CancelledBooking
	Availability *AvailabilityReport
	ServiceCheck *ServiceExistsReport
}

func failure(message string) *Response {
	return &Response{Success: false, Message: message}
}
