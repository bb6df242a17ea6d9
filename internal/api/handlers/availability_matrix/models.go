package availability_matrix

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	availabilityMatrix "github.com/m04kA/SMC-CalendarService/internal/usecase/availability_matrix"
)

// ServiceDayResponse доступность услуги на день в HTTP ответе
type ServiceDayResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`

	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`

	QuantityTotal     int `json:"quantityTotal"`
	QuantityUsed      int `json:"quantityUsed"`
	QuantityAvailable int `json:"quantityAvailable"`
}

// DayResponse доступность всех услуг на календарный день
type DayResponse struct {
	Date     string               `json:"date"`
	Services []ServiceDayResponse `json:"services"`
}

// MatrixResponse HTTP response model
type MatrixResponse struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Days []DayResponse `json:"days"`
}

// ToUseCaseRequest формирует запрос use case из query параметров.
// Обязательные параметры: from, to (даты YYYY-MM-DD, границы включительно).
// Опциональные: serviceIds (через запятую), category.
func ToUseCaseRequest(tenantID int64, query url.Values) (*availabilityMatrix.Request, error) {
	fromStr := query.Get("from")
	toStr := query.Get("to")
	if fromStr == "" || toStr == "" {
		return nil, fmt.Errorf("from and to are required")
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, fmt.Errorf("invalid from value: %w", err)
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, fmt.Errorf("invalid to value: %w", err)
	}

	req := &availabilityMatrix.Request{
		TenantID: tenantID,
		From:     from,
		To:       to,
	}

	// Парсим serviceIds если указаны
	if raw := query.Get("serviceIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid serviceIds value: %w", err)
			}
			req.ServiceIDs = append(req.ServiceIDs, id)
		}
	}

	// Парсим category если указана
	if raw := query.Get("category"); raw != "" {
		req.Category = &raw
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *availabilityMatrix.Response) *MatrixResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		services := make([]ServiceDayResponse, 0, len(day.Services))
		for _, entry := range day.Services {
			services = append(services, ServiceDayResponse{
				ServiceID:         entry.ServiceID,
				ServiceName:       entry.ServiceName,
				Available:         entry.Available,
				Reason:            entry.Reason,
				QuantityTotal:     entry.QuantityTotal,
				QuantityUsed:      entry.QuantityUsed,
				QuantityAvailable: entry.QuantityAvailable,
			})
		}

		days = append(days, DayResponse{
			Date:     day.Date,
			Services: services,
		})
	}

	return &MatrixResponse{
		From: resp.From.Format(domain.DateFormat),
		To:   resp.To.Format(domain.DateFormat),
		Days: days,
	}
}
