package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	ServiceIDs []int64   `json:"serviceIds"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`

	// ExcludeBookingID исключает бронирование из учета занятости
	// при проверке переноса
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty"`
}

// OverlappingBookingResponse пересекающееся бронирование в HTTP ответе
type OverlappingBookingResponse struct {
	BookingID int64     `json:"bookingId"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Quantity  int       `json:"quantity"`
}

// ServiceReportResponse отчет по одной услуге в HTTP ответе
type ServiceReportResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`

	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`

	QuantityTotal     int `json:"quantityTotal"`
	QuantityUsed      int `json:"quantityUsed"`
	QuantityAvailable int `json:"quantityAvailable"`

	OverlappingBookings []OverlappingBookingResponse `json:"overlappingBookings"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	StartTime    time.Time               `json:"startTime"`
	EndTime      time.Time               `json:"endTime"`
	AllAvailable bool                    `json:"allAvailable"`
	Services     []ServiceReportResponse `json:"services"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest(tenantID int64) *checkAvailability.Request {
	return &checkAvailability.Request{
		TenantID:         tenantID,
		ServiceIDs:       r.ServiceIDs,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		ExcludeBookingID: r.ExcludeBookingID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	services := make([]ServiceReportResponse, 0, len(resp.Services))
	for _, report := range resp.Services {
		overlapping := make([]OverlappingBookingResponse, 0, len(report.OverlappingBookings))
		for _, ref := range report.OverlappingBookings {
			overlapping = append(overlapping, OverlappingBookingResponse{
				BookingID: ref.BookingID,
				Title:     ref.Title,
				Status:    ref.Status,
				StartTime: ref.StartTime,
				EndTime:   ref.EndTime,
				Quantity:  ref.Quantity,
			})
		}

		services = append(services, ServiceReportResponse{
			ServiceID:           report.ServiceID,
			ServiceName:         report.ServiceName,
			Available:           report.Available,
			Reason:              report.Reason,
			QuantityTotal:       report.QuantityTotal,
			QuantityUsed:        report.QuantityUsed,
			QuantityAvailable:   report.QuantityAvailable,
			OverlappingBookings: overlapping,
		})
	}

	return &CheckAvailabilityResponse{
		StartTime:    resp.StartTime,
		EndTime:      resp.EndTime,
		AllAvailable: resp.AllAvailable,
		Services:     services,
	}
}
