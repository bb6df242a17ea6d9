package models

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек календаря.
// Поддерживает частичное обновление - меняются только указанные поля.
type UpdateSettingsRequest struct {
	TenantID              int64    `json:"tenantId"`
	BusinessHoursStart    *string  `json:"businessHoursStart,omitempty"` // "08:00"
	BusinessHoursEnd      *string  `json:"businessHoursEnd,omitempty"`   // "18:00"
	AIBookingAutoConfirm  *bool    `json:"aiBookingAutoConfirm,omitempty"`
	AIConfidenceThreshold *float64 `json:"aiConfidenceThreshold,omitempty"`
}

// ApplyToSettings применяет указанные поля запроса к настройкам
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.CalendarSettings) {
	if r.BusinessHoursStart != nil {
		s.BusinessHoursStart = types.TimeString(*r.BusinessHoursStart)
	}
	if r.BusinessHoursEnd != nil {
		s.BusinessHoursEnd = types.TimeString(*r.BusinessHoursEnd)
	}
	if r.AIBookingAutoConfirm != nil {
		s.AIBookingAutoConfirm = *r.AIBookingAutoConfirm
	}
	if r.AIConfidenceThreshold != nil {
		s.AIConfidenceThreshold = *r.AIConfidenceThreshold
	}
}

// Response модели

// SettingsResponse ответ с настройками календаря тенанта
type SettingsResponse struct {
	TenantID              int64      `json:"tenantId"`
	BusinessHoursStart    string     `json:"businessHoursStart"`
	BusinessHoursEnd      string     `json:"businessHoursEnd"`
	AIBookingAutoConfirm  bool       `json:"aiBookingAutoConfirm"`
	AIConfidenceThreshold float64    `json:"aiConfidenceThreshold"`
	CreatedAt             *time.Time `json:"createdAt,omitempty"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO.
// Для настроек по умолчанию (строка еще не создана) временные метки пустые.
func FromDomainSettings(s *domain.CalendarSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		TenantID:              s.TenantID,
		BusinessHoursStart:    s.BusinessHoursStart.String(),
		BusinessHoursEnd:      s.BusinessHoursEnd.String(),
		AIBookingAutoConfirm:  s.AIBookingAutoConfirm,
		AIConfidenceThreshold: s.AIConfidenceThreshold,
	}

	if !s.CreatedAt.IsZero() {
		createdAt := s.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
