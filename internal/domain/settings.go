package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// CalendarSettings настройки календаря тенанта: рабочие часы и политика
// автоподтверждения бронирований от AI ассистента. Строка на тенанта
// одна, создается с дефолтами при первом обращении. Отсутствие строки
// трактуется как отсутствие ограничений по рабочим часам.
type CalendarSettings struct {
	ID       int64
	TenantID int64

	BusinessHoursStart types.TimeString
	BusinessHoursEnd   types.TimeString

	AIBookingAutoConfirm  bool
	AIConfidenceThreshold float64 // [0, 1]

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCalendarSettings настройки по умолчанию для тенанта
func DefaultCalendarSettings(tenantID int64) *CalendarSettings {
	return &CalendarSettings{
		TenantID:              tenantID,
		BusinessHoursStart:    DefaultBusinessHoursStart,
		BusinessHoursEnd:      DefaultBusinessHoursEnd,
		AIBookingAutoConfirm:  false,
		AIConfidenceThreshold: DefaultAIConfidenceThreshold,
	}
}

// HasBusinessHours reports whether both business-hours bounds are set
func (s *CalendarSettings) HasBusinessHours() bool {
	return s.BusinessHoursStart != "" && s.BusinessHoursEnd != ""
}
