package models

import (
	bookingmodels "github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
)

// DashboardStatsResponse сводка тенанта за текущий месяц
type DashboardStatsResponse struct {
	TotalBookings     int64 `json:"totalBookings"`
	ConfirmedBookings int64 `json:"confirmedBookings"`
	PendingBookings   int64 `json:"pendingBookings"`
	AICreatedBookings int64 `json:"aiCreatedBookings"`

	// Неразрешенные конфликты, обнаруженные в этом месяце
	Conflicts int64 `json:"conflicts"`

	ActiveServices  int64 `json:"activeServices"`
	ActiveCustomers int64 `json:"activeCustomers"`

	RecentAIBookings []bookingmodels.BookingResponse `json:"recentAiBookings"`
}
