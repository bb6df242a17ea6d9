package domain

import "time"

// ReservationStatus represents the fulfilment state of a single reservation line
type ReservationStatus string

const (
	ReservationReserved  ReservationStatus = "reserved"
	ReservationPrepared  ReservationStatus = "prepared"
	ReservationDelivered ReservationStatus = "delivered"
	ReservationInUse     ReservationStatus = "in_use"
	ReservationReturned  ReservationStatus = "returned"
	ReservationDamaged   ReservationStatus = "damaged"
)

// Reservation is a booking's claim on one service for the booking's
// time window. Пара (BookingID, ServiceID) уникальна. В учет занятости
// резервация попадает только пока родительское бронирование активно.
type Reservation struct {
	ID        int64
	BookingID int64
	ServiceID int64

	Quantity   int
	Status     ReservationStatus
	UnitPrice  float64
	TotalPrice float64

	// Денормализация для истории: услугу могут переименовать или удалить
	ServiceName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidReservationStatus reports whether the value is a known reservation status
func IsValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationReserved, ReservationPrepared, ReservationDelivered,
		ReservationInUse, ReservationReturned, ReservationDamaged:
		return true
	default:
		return false
	}
}

// ReservationUsage занятость услуги одним активным бронированием.
// Результат выборки пересекающихся резерваций: кроме количества несет
// окно и статус родительского бронирования для построения конфликтов.
type ReservationUsage struct {
	BookingID     int64
	BookingTitle  string
	BookingStatus BookingStatus
	ServiceID     int64
	Quantity      int
	StartTime     time.Time
	EndTime       time.Time
}

// Window returns the parent booking's time window
func (u ReservationUsage) Window() TimeWindow {
	return TimeWindow{Start: u.StartTime, End: u.EndTime}
}
