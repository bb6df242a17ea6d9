package domain

import "github.com/m04kA/SMC-CalendarService/pkg/types"

// Default calendar settings values
const (
	DefaultBusinessHoursStart    types.TimeString = "08:00"
	DefaultBusinessHoursEnd      types.TimeString = "18:00"
	DefaultAIConfidenceThreshold                  = 0.8
)

// UnlimitedQuantity сентинел для услуг без ограничения количества.
// Используется вместо переполнения в числовых полях отчетов.
const UnlimitedQuantity = -1

// Business validation constants
const (
	MaxTitleLength           = 255
	MaxNotesLength           = 2000
	MaxResolutionNotesLength = 2000
	MaxResolvedByLength      = 50
	MaxMatrixRangeDays       = 92 // Квартал: потолок поденной матрицы доступности
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses статусы, при которых резервации бронирования
// занимают количество услуги. Используется во всех выборках занятости.
var ActiveBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// InactiveBookingStatuses статусы, не влияющие на занятость
var InactiveBookingStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
