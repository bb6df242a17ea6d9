package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// BookingSource represents how the booking entered the system
type BookingSource string

const (
	SourceManual      BookingSource = "manual"
	SourceAIAssistant BookingSource = "ai_assistant"
	SourceBookingLink BookingSource = "booking_link"
	SourceAPI         BookingSource = "api"
)

// Booking represents a reservation of services for a time window.
// Владеет своими Reservation (по одной на услугу) и никогда не удаляется
// физически: отмена переводит статус в cancelled и дописывает заметку.
type Booking struct {
	ID         int64
	TenantID   int64
	CustomerID int64
	Title      string

	// Полуинтервал [StartTime, EndTime), EndTime строго больше StartTime
	StartTime time.Time
	EndTime   time.Time

	Status BookingStatus
	Source BookingSource

	Notes      string
	TotalPrice float64

	// Метаданные AI ассистента (заполняются только для Source == ai_assistant)
	AISessionID  *uuid.UUID
	AIMessageID  *uuid.UUID
	AIConfidence *float64

	Reservations []Reservation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the booking's half-open time window
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.StartTime, End: b.EndTime}
}

// IsActive returns true if the booking's reservations count toward
// service usage (pending, confirmed or in_progress)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// IsTerminal returns true if no transition is allowed out of the current status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCompleted && b.Status != StatusCancelled
}

// CanTransitionTo reports whether the status change is allowed by the
// booking state machine
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusInProgress || next == StatusNoShow || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusInProgress || next == StatusNoShow || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	case StatusNoShow:
		return next == StatusCancelled
	default:
		// completed и cancelled терминальные статусы
		return false
	}
}

// AppendNote дописывает строку к заметкам бронирования с новой строки
func (b *Booking) AppendNote(note string) {
	if b.Notes == "" {
		b.Notes = note
		return
	}
	b.Notes = fmt.Sprintf("%s\n%s", b.Notes, note)
}

// IsValidBookingStatus reports whether the value is a known booking status
func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsValidBookingSource reports whether the value is a known booking source
func IsValidBookingSource(s BookingSource) bool {
	switch s {
	case SourceManual, SourceAIAssistant, SourceBookingLink, SourceAPI:
		return true
	default:
		return false
	}
}

// BookingsFilter фильтр для выборки бронирований тенанта
type BookingsFilter struct {
	TenantID        int64          // Обязательный параметр
	CustomerID      *int64         // Фильтр по клиенту (опционально)
	ServiceID       *int64         // Фильтр по услуге через reservations (опционально)
	From            *time.Time     // Начало периода (опционально)
	To              *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные, завершенные и no-show
	Limit           int            // 0 - без ограничения
}
