package availability_matrix

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса поденной матрицы доступности
type Request struct {
	TenantID int64

	// Полные календарные дни, границы включительно
	From time.Time
	To   time.Time

	// ServiceIDs ограничивает матрицу перечисленными услугами.
	// Пустой список означает все активные услуги тенанта.
	ServiceIDs []int64

	// Category фильтр по категории, применяется только при пустом ServiceIDs
	Category *string
}

// ServiceDayReport доступность одной услуги на один день
type ServiceDayReport struct {
	ServiceID   int64
	ServiceName string

	Available bool
	Reason    string

	QuantityTotal     int
	QuantityUsed      int
	QuantityAvailable int
}

// DayReport доступность всех услуг на один календарный день
type DayReport struct {
	Date     string // YYYY-MM-DD
	Services []ServiceDayReport
}

// Response модель ответа с матрицей доступности по дням
type Response struct {
	From time.Time
	To   time.Time
	Days []DayReport
}

func fromDomainMatrix(matrix *domain.AvailabilityMatrix) *Response {
	days := make([]DayReport, 0, len(matrix.Days))

	for _, day := range matrix.Days {
		services := make([]ServiceDayReport, 0, len(day.Services))
		for _, entry := range day.Services {
			services = append(services, ServiceDayReport{
				ServiceID:         entry.ServiceID,
				ServiceName:       entry.ServiceName,
				Available:         entry.Available,
				Reason:            entry.Reason,
				QuantityTotal:     entry.QuantityTotal,
				QuantityUsed:      entry.QuantityUsed,
				QuantityAvailable: entry.QuantityAvailable,
			})
		}

		days = append(days, DayReport{
			Date:     day.Date.Format(domain.DateFormat),
			Services: services,
		})
	}

	return &Response{
		From: matrix.From,
		To:   matrix.To,
		Days: days,
	}
}
