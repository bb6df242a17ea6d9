package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetBookingsRequest запрос на получение бронирований тенанта
type GetBookingsRequest struct {
	TenantID        int64      `json:"tenantId"`
	CustomerID      *int64     `json:"customerId,omitempty"`      // Фильтр по клиенту (опционально)
	ServiceID       *int64     `json:"serviceId,omitempty"`       // Фильтр по услуге (опционально)
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершенные и отмененные
	Limit           int        `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		TenantID:        r.TenantID,
		CustomerID:      r.CustomerID,
		ServiceID:       r.ServiceID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
		Limit:           r.Limit,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	TenantID  int64  `json:"tenantId"`
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	TenantID    int64  `json:"tenantId"`
	BookingID   int64  `json:"bookingId"`
	Reason      string `json:"reason,omitempty"`
	CancelledBy string `json:"cancelledBy,omitempty"` // manual | ai_assistant
}

// Response модели

// ReservationResponse строка резервации в ответе
type ReservationResponse struct {
	ID          int64   `json:"id"`
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Quantity    int     `json:"quantity"`
	Status      string  `json:"status"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// BookingResponse ответ с данными бронирования
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

	Reservations []ReservationResponse `json:"reservations"`

	// Метаданные AI присутствуют только у бронирований от ассистента
	AISessionID  *uuid.UUID `json:"aiSessionId,omitempty"`
	AIMessageID  *uuid.UUID `json:"aiMessageId,omitempty"`
	AIConfidence *float64   `json:"aiConfidence,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	reservations := make([]ReservationResponse, 0, len(b.Reservations))
	for _, res := range b.Reservations {
		reservations = append(reservations, ReservationResponse{
			ID:          res.ID,
			ServiceID:   res.ServiceID,
			ServiceName: res.ServiceName,
			Quantity:    res.Quantity,
			Status:      string(res.Status),
			UnitPrice:   res.UnitPrice,
			TotalPrice:  res.TotalPrice,
		})
	}

	return &BookingResponse{
		ID:           b.ID,
		TenantID:     b.TenantID,
		CustomerID:   b.CustomerID,
		Title:        b.Title,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.Status),
		Source:       string(b.Source),
		Notes:        b.Notes,
		TotalPrice:   b.TotalPrice,
		Reservations: reservations,
		AISessionID:  b.AISessionID,
		AIMessageID:  b.AIMessageID,
		AIConfidence: b.AIConfidence,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidBookingStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
