package domain

import "time"

// Причины недоступности услуги в отчете ServiceAvailability
const (
	ReasonInactive    = "inactive"
	ReasonFullyBooked = "fully_booked"
	ReasonNotFound    = "not_found"
)

// BookingRef краткая ссылка на пересекающееся бронирование в отчете
// о доступности
type BookingRef struct {
	BookingID int64
	Title     string
	Status    BookingStatus
	StartTime time.Time
	EndTime   time.Time
	Quantity  int
}

// ServiceAvailability результат проверки доступности одной услуги
// в запрошенном окне. Для unlimited услуг количества заполняются
// сентинелом UnlimitedQuantity.
type ServiceAvailability struct {
	ServiceID   int64
	ServiceName string

	Available bool
	Reason    string // Пустая строка, если услуга доступна

	QuantityTotal     int
	QuantityUsed      int
	QuantityAvailable int

	Overlapping []BookingRef
}

// IsUnlimited reports whether the availability was computed for an unlimited service
func (a *ServiceAvailability) IsUnlimited() bool {
	return a.QuantityTotal == UnlimitedQuantity
}

// IsExhausted returns true if nothing can be booked in the window
func (a *ServiceAvailability) IsExhausted() bool {
	return !a.IsUnlimited() && a.QuantityAvailable <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (a *ServiceAvailability) OccupancyRate() float64 {
	if a.IsUnlimited() || a.QuantityTotal == 0 {
		return 0
	}
	return float64(a.QuantityUsed) / float64(a.QuantityTotal) * 100
}

// DayAvailability доступность набора услуг на один календарный день.
// Окно дня полуинтервал [00:00 этого дня, 00:00 следующего).
type DayAvailability struct {
	Date     time.Time
	Services []ServiceAvailability
}

// AvailabilityMatrix результат поденной оценки доступности для
// визуализации календаря
type AvailabilityMatrix struct {
	From time.Time
	To   time.Time
	Days []DayAvailability
}
