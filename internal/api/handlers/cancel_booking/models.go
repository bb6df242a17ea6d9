package cancel_booking

import (
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason      string `json:"reason,omitempty"`
	CancelledBy string `json:"cancelledBy,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(tenantID, bookingID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		TenantID:    tenantID,
		BookingID:   bookingID,
		Reason:      r.Reason,
		CancelledBy: r.CancelledBy,
	}
}
