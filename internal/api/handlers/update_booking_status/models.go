package update_booking_status

import (
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(tenantID, bookingID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		TenantID:  tenantID,
		BookingID: bookingID,
		Status:    r.Status,
	}
}
