package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	createBooking "github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
)

// CustomerRequest клиент в HTTP запросе: либо id существующего,
// либо контактные данные для создания нового
type CustomerRequest struct {
	ID    *int64 `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ServiceRefRequest услуга в HTTP запросе: по id или по имени
type ServiceRefRequest struct {
	ID       *int64  `json:"id,omitempty"`
	Name     *string `json:"name,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Title     string              `json:"title"`
	Notes     string              `json:"notes,omitempty"`
	StartTime time.Time           `json:"startTime"`
	EndTime   time.Time           `json:"endTime"`
	Customer  CustomerRequest     `json:"customer"`
	Services  []ServiceRefRequest `json:"services"`
	Source    string              `json:"source,omitempty"`

	AISessionID  *uuid.UUID `json:"aiSessionId,omitempty"`
	AIMessageID  *uuid.UUID `json:"aiMessageId,omitempty"`
	AIConfidence *float64   `json:"aiConfidence,omitempty"`
}

// ReservationLineResponse строка резервации в HTTP ответе
type ReservationLineResponse struct {
	ID          int64   `json:"id"`
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Quantity    int     `json:"quantity"`
	Status      string  `json:"status"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// ResolvedServiceResponse разрешенная услуга в HTTP ответе
type ResolvedServiceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SuggestedSlotResponse альтернативное окно в HTTP ответе
type SuggestedSlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConflictResponse конфликт в HTTP ответе
type ConflictResponse struct {
	ID                   int64                   `json:"id"`
	ConflictType         string                  `json:"conflictType"`
	Severity             string                  `json:"severity"`
	ServiceID            *int64                  `json:"serviceId,omitempty"`
	ConflictingBookingID *int64                  `json:"conflictingBookingId,omitempty"`
	Description          string                  `json:"description"`
	SuggestedSlots       []SuggestedSlotResponse `json:"suggestedSlots"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64     `json:"id"`
	TenantID   int64     `json:"tenantId"`
	CustomerID int64     `json:"customerId"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	Source     string    `json:"source"`
	Notes      string    `json:"notes,omitempty"`
	TotalPrice float64   `json:"totalPrice"`

	AutoConfirmed bool `json:"autoConfirmed"`

	Reservations     []ReservationLineResponse `json:"reservations"`
	ResolvedServices []ResolvedServiceResponse `json:"resolvedServices"`
	DroppedServices  []string                  `json:"droppedServices,omitempty"`
	Conflicts        []ConflictResponse        `json:"conflicts"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID int64) *createBooking.Request {
	services := make([]domain.ServiceRef, 0, len(r.Services))
	for _, svc := range r.Services {
		services = append(services, domain.ServiceRef{
			ID:       svc.ID,
			Name:     svc.Name,
			Quantity: svc.Quantity,
		})
	}

	return &createBooking.Request{
		TenantID:  tenantID,
		Title:     r.Title,
		Notes:     r.Notes,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Customer: domain.CustomerRef{
			ID:    r.Customer.ID,
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		Services:     services,
		Source:       domain.BookingSource(r.Source),
		AISessionID:  r.AISessionID,
		AIMessageID:  r.AIMessageID,
		AIConfidence: r.AIConfidence,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	reservations := make([]ReservationLineResponse, 0, len(resp.Reservations))
	for _, line := range resp.Reservations {
		reservations = append(reservations, ReservationLineResponse{
			ID:          line.ID,
			ServiceID:   line.ServiceID,
			ServiceName: line.ServiceName,
			Quantity:    line.Quantity,
			Status:      line.Status,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
		})
	}

	resolved := make([]ResolvedServiceResponse, 0, len(resp.ResolvedServices))
	for _, svc := range resp.ResolvedServices {
		resolved = append(resolved, ResolvedServiceResponse{
			ID:       svc.ID,
			Name:     svc.Name,
			Quantity: svc.Quantity,
		})
	}

	conflicts := make([]ConflictResponse, 0, len(resp.Conflicts))
	for _, c := range resp.Conflicts {
		slots := make([]SuggestedSlotResponse, 0, len(c.SuggestedSlots))
		for _, slot := range c.SuggestedSlots {
			slots = append(slots, SuggestedSlotResponse{Start: slot.Start, End: slot.End})
		}

		conflicts = append(conflicts, ConflictResponse{
			ID:                   c.ID,
			ConflictType:         c.Type,
			Severity:             c.Severity,
			ServiceID:            c.ServiceID,
			ConflictingBookingID: c.ConflictingBookingID,
			Description:          c.Description,
			SuggestedSlots:       slots,
		})
	}

	return &BookingResponse{
		ID:               resp.ID,
		TenantID:         resp.TenantID,
		CustomerID:       resp.CustomerID,
		Title:            resp.Title,
		StartTime:        resp.StartTime,
		EndTime:          resp.EndTime,
		Status:           resp.Status,
		Source:           resp.Source,
		Notes:            resp.Notes,
		TotalPrice:       resp.TotalPrice,
		AutoConfirmed:    resp.AutoConfirmed,
		Reservations:     reservations,
		ResolvedServices: resolved,
		DroppedServices:  resp.DroppedServices,
		Conflicts:        conflicts,
		CreatedAt:        resp.CreatedAt,
		UpdatedAt:        resp.UpdatedAt,
	}
}
