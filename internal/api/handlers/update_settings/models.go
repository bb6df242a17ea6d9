package update_settings

import (
	"github.com/m04kA/SMC-CalendarService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model.
// Частичное обновление: меняются только указанные поля.
type UpdateSettingsRequest struct {
	BusinessHoursStart    *string  `json:"businessHoursStart,omitempty"`
	BusinessHoursEnd      *string  `json:"businessHoursEnd,omitempty"`
	AIBookingAutoConfirm  *bool    `json:"aiBookingAutoConfirm,omitempty"`
	AIConfidenceThreshold *float64 `json:"aiConfidenceThreshold,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(tenantID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		TenantID:              tenantID,
		BusinessHoursStart:    r.BusinessHoursStart,
		BusinessHoursEnd:      r.BusinessHoursEnd,
		AIBookingAutoConfirm:  r.AIBookingAutoConfirm,
		AIConfidenceThreshold: r.AIConfidenceThreshold,
	}
}
