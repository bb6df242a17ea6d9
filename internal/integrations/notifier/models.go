package notifier

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Типы событий жизненного цикла бронирования
const (
	EventBookingCreated       = "booking.created"
	EventBookingCancelled     = "booking.cancelled"
	EventBookingStatusChanged = "booking.status_changed"
)

// Event конверт события для публикации в Redis
type Event struct {
	EventID    string            `json:"eventId"`
	EventType  string            `json:"eventType"`
	TenantID   int64             `json:"tenantId"`
	OccurredAt time.Time         `json:"occurredAt"`
	Booking    BookingPayload    `json:"booking"`
	Conflicts  []ConflictPayload `json:"conflicts,omitempty"`
}

// BookingPayload снимок бронирования в событии
type BookingPayload struct {
	ID         int64     `json:"id"`
	TenantID   int64     `json:"tenantId"`
	CustomerID int64     `json:"customerId"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	Source     string    `json:"source"`
	TotalPrice float64   `json:"totalPrice"`
}

// ConflictPayload снимок конфликта, обнаруженного при создании бронирования
type ConflictPayload struct {
	ID           int64  `json:"id"`
	ConflictType string `json:"conflictType"`
	Severity     string `json:"severity"`
	ServiceID    *int64 `json:"serviceId,omitempty"`
	Description  string `json:"description"`
}

func bookingPayload(b *domain.Booking) BookingPayload {
	return BookingPayload{
		ID:         b.ID,
		TenantID:   b.TenantID,
		CustomerID: b.CustomerID,
		Title:      b.Title,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     string(b.Status),
		Source:     string(b.Source),
		TotalPrice: b.TotalPrice,
	}
}

func conflictPayloads(conflicts []domain.ConflictRecord) []ConflictPayload {
	if len(conflicts) == 0 {
		return nil
	}

	payloads := make([]ConflictPayload, 0, len(conflicts))
	for _, c := range conflicts {
		payloads = append(payloads, ConflictPayload{
			ID:           c.ID,
			ConflictType: string(c.Type),
			Severity:     string(c.Severity),
			ServiceID:    c.ServiceID,
			Description:  c.Description,
		})
	}

	return payloads
}
