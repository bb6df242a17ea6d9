package check_availability

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса на проверку доступности услуг в окне времени
type Request struct {
	TenantID   int64
	ServiceIDs []int64
	StartTime  time.Time
	EndTime    time.Time

	// ExcludeBookingID исключает бронирование из учета занятости,
	// используется при проверке для переноса
	ExcludeBookingID *int64
}

// OverlappingBooking пересекающееся бронирование в отчете о доступности
type OverlappingBooking struct {
	BookingID int64
	Title     string
	Status    string
	StartTime time.Time
	EndTime   time.Time
	Quantity  int
}

// ServiceReport отчет о доступности одной услуги
type ServiceReport struct {
	ServiceID   int64
	ServiceName string

	Available bool
	Reason    string

	QuantityTotal     int
	QuantityUsed      int
	QuantityAvailable int

	OverlappingBookings []OverlappingBooking
}

// Response модель ответа с отчетами по каждой запрошенной услуге
type Response struct {
	StartTime time.Time
	EndTime   time.Time

	// AllAvailable true, когда доступна каждая запрошенная услуга
	AllAvailable bool

	Services []ServiceReport
}

func fromDomainAvailability(entries []domain.ServiceAvailability) ([]ServiceReport, bool) {
	reports := make([]ServiceReport, 0, len(entries))
	allAvailable := true

	for _, entry := range entries {
		overlapping := make([]OverlappingBooking, 0, len(entry.Overlapping))
		for _, ref := range entry.Overlapping {
			overlapping = append(overlapping, OverlappingBooking{
				BookingID: ref.BookingID,
				Title:     ref.Title,
				Status:    string(ref.Status),
				StartTime: ref.StartTime,
				EndTime:   ref.EndTime,
				Quantity:  ref.Quantity,
			})
		}

		reports = append(reports, ServiceReport{
			ServiceID:           entry.ServiceID,
			ServiceName:         entry.ServiceName,
			Available:           entry.Available,
			Reason:              entry.Reason,
			QuantityTotal:       entry.QuantityTotal,
			QuantityUsed:        entry.QuantityUsed,
			QuantityAvailable:   entry.QuantityAvailable,
			OverlappingBookings: overlapping,
		})

		if !entry.Available {
			allAvailable = false
		}
	}

	return reports, allAvailable
}
