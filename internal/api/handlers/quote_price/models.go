package quote_price

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	quotePrice "github.com/m04kA/SMC-CalendarService/internal/usecase/quote_price"
)

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	ServiceID   *int64    `json:"serviceId,omitempty"`
	ServiceName *string   `json:"serviceName,omitempty"`
	Quantity    int       `json:"quantity,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// QuotePriceResponse HTTP response model
type QuotePriceResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`

	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	DurationHours float64   `json:"durationHours"`

	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`

	BasePrice    float64  `json:"basePrice"`
	PricePerHour *float64 `json:"pricePerHour,omitempty"`
	PricePerDay  *float64 `json:"pricePerDay,omitempty"`
	PricePerWeek *float64 `json:"pricePerWeek,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuotePriceRequest) ToUseCaseRequest(tenantID int64) *quotePrice.Request {
	return &quotePrice.Request{
		TenantID: tenantID,
		Service: domain.ServiceRef{
			ID:       r.ServiceID,
			Name:     r.ServiceName,
			Quantity: r.Quantity,
		},
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuotePriceResponse {
	return &QuotePriceResponse{
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		StartTime:     resp.StartTime,
		EndTime:       resp.EndTime,
		DurationHours: resp.DurationHours,
		Quantity:      resp.Quantity,
		UnitPrice:     resp.UnitPrice,
		TotalPrice:    resp.TotalPrice,
		BasePrice:     resp.BasePrice,
		PricePerHour:  resp.PricePerHour,
		PricePerDay:   resp.PricePerDay,
		PricePerWeek:  resp.PricePerWeek,
	}
}
