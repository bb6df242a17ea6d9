package execute_ai_action

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	createBookingHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/create_booking"
	executeAIAction "github.com/m04kA/SMC-CalendarService/internal/usecase/execute_ai_action"
)

// ExecuteActionRequest HTTP request model. Блок parameters декодируется
// в зависимости от action.
type ExecuteActionRequest struct {
	Action     string          `json:"action"`
	SessionID  *uuid.UUID      `json:"sessionId,omitempty"`
	MessageID  *uuid.UUID      `json:"messageId,omitempty"`
	Confidence *float64        `json:"confidence,omitempty"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

type customerParams struct {
	ID    *int64 `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type serviceSelectionParams struct {
	ID       *int64  `json:"id,omitempty"`
	Name     *string `json:"name,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
}

type createBookingParams struct {
	Title     string                   `json:"title"`
	Notes     string                   `json:"notes,omitempty"`
	StartTime time.Time                `json:"startTime"`
	EndTime   time.Time                `json:"endTime"`
	Customer  customerParams           `json:"customer"`
	Services  []serviceSelectionParams `json:"services"`
}

type cancelBookingParams struct {
	BookingID int64  `json:"bookingId"`
	Reason    string `json:"reason,omitempty"`
}

type checkAvailabilityParams struct {
	ServiceNames []string  `json:"serviceNames"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
}

type checkServiceExistsParams struct {
	ServiceName string `json:"serviceName"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Для неизвестного action параметры не разбираются: use case сам вернет
// отказ с сообщением.
func (r *ExecuteActionRequest) ToUseCaseRequest(tenantID int64) (*executeAIAction.Request, error) {
	req := &executeAIAction.Request{
		TenantID:   tenantID,
		Action:     r.Action,
		SessionID:  r.SessionID,
		MessageID:  r.MessageID,
		Confidence: r.Confidence,
	}

	switch r.Action {
	case executeAIAction.ActionCreateBooking:
		var params createBookingParams
		if err := r.decodeParams(&params); err != nil {
			return nil, err
		}

		services := make([]executeAIAction.ServiceSelection, 0, len(params.Services))
		for _, svc := range params.Services {
			services = append(services, executeAIAction.ServiceSelection{
				ID:       svc.ID,
				Name:     svc.Name,
				Quantity: svc.Quantity,
			})
		}

		req.CreateBooking = &executeAIAction.CreateBookingParams{
			Title:     params.Title,
			Notes:     params.Notes,
			StartTime: params.StartTime,
			EndTime:   params.EndTime,
			Customer: executeAIAction.CustomerInfo{
				ID:    params.Customer.ID,
				Name:  params.Customer.Name,
				Email: params.Customer.Email,
				Phone: params.Customer.Phone,
			},
			Services: services,
		}

	case executeAIAction.ActionCancelBooking:
		var params cancelBookingParams
		if err := r.decodeParams(&params); err != nil {
			return nil, err
		}
		req.CancelBooking = &executeAIAction.CancelBookingParams{
			BookingID: params.BookingID,
			Reason:    params.Reason,
		}

	case executeAIAction.ActionCheckAvailability:
		var params checkAvailabilityParams
		if err := r.decodeParams(&params); err != nil {
			return nil, err
		}
		req.CheckAvailability = &executeAIAction.CheckAvailabilityParams{
			ServiceNames: params.ServiceNames,
			StartTime:    params.StartTime,
			EndTime:      params.EndTime,
		}

	case executeAIAction.ActionCheckServiceExists:
		var params checkServiceExistsParams
		if err := r.decodeParams(&params); err != nil {
			return nil, err
		}
		req.CheckServiceExists = &executeAIAction.CheckServiceExistsParams{
			ServiceName: params.ServiceName,
		}
	}

	return req, nil
}

func (r *ExecuteActionRequest) decodeParams(v interface{}) error {
	if len(r.Parameters) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Parameters, v); err != nil {
		return fmt.Errorf("invalid parameters for action %s: %w", r.Action, err)
	}
	return nil
}

// ServiceStatusResponse состояние услуги в отчете о доступности
type ServiceStatusResponse struct {
	ServiceID         int64  `json:"serviceId"`
	Name              string `json:"name"`
	Category          string `json:"category,omitempty"`
	Available         bool   `json:"available"`
	QuantityAvailable int    `json:"quantityAvailable"`
	Reason            string `json:"reason,omitempty"`
}

// AvailabilityReportResponse результат check_availability
type AvailabilityReportResponse struct {
	StartTime    time.Time               `json:"startTime"`
	EndTime      time.Time               `json:"endTime"`
	Available    []ServiceStatusResponse `json:"available"`
	Unavailable  []ServiceStatusResponse `json:"unavailable"`
	TotalChecked int                     `json:"totalChecked"`
}

// ServiceInfoResponse найденная услуга в отчете check_service_exists
type ServiceInfoResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category,omitempty"`
	AvailabilityType string  `json:"availabilityType"`
	Quantity         int     `json:"quantity"`
	BasePrice        float64 `json:"basePrice"`
}

// ServiceCheckResponse результат check_service_exists
type ServiceCheckResponse struct {
	Exists      bool                 `json:"exists"`
	Service     *ServiceInfoResponse `json:"service,omitempty"`
	Suggestions []string             `json:"suggestions,omitempty"`
}

// CancelledBookingResponse результат cancel_booking
type CancelledBookingResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}

// ExecuteActionResponse HTTP response model
type ExecuteActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	Booking      *createBookingHandler.BookingResponse `json:"booking,omitempty"`
	Cancelled    *CancelledBookingResponse             `json:"cancelled,omitempty"`
	Availability *AvailabilityReportResponse           `json:"availability,omitempty"`
	ServiceCheck *ServiceCheckResponse                 `json:"serviceCheck,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *executeAIAction.Response) *ExecuteActionResponse {
	out := &ExecuteActionResponse{
		Success: resp.Success,
		Message: resp.Message,
	}

	if resp.Booking != nil {
		out.Booking = createBookingHandler.FromUseCaseResponse(resp.Booking)
	}

	if resp.Cancelled != nil {
		out.Cancelled = &CancelledBookingResponse{
			BookingID: resp.Cancelled.BookingID,
			Status:    resp.Cancelled.Status,
		}
	}

	if resp.Availability != nil {
		out.Availability = &AvailabilityReportResponse{
			StartTime:    resp.Availability.StartTime,
			EndTime:      resp.Availability.EndTime,
			Available:    serviceStatuses(resp.Availability.Available),
			Unavailable:  serviceStatuses(resp.Availability.Unavailable),
			TotalChecked: resp.Availability.TotalChecked,
		}
	}

	if resp.ServiceCheck != nil {
		check := &ServiceCheckResponse{
			Exists:      resp.ServiceCheck.Exists,
			Suggestions: resp.ServiceCheck.Suggestions,
		}
		if svc := resp.ServiceCheck.Service; svc != nil {
			check.Service = &ServiceInfoResponse{
				ID:               svc.ID,
				Name:             svc.Name,
				Category:         svc.Category,
				AvailabilityType: svc.AvailabilityType,
				Quantity:         svc.Quantity,
				BasePrice:        svc.BasePrice,
			}
		}
		out.ServiceCheck = check
	}

	return out
}

func serviceStatuses(entries []executeAIAction.ServiceStatus) []ServiceStatusResponse {
	statuses := make([]ServiceStatusResponse, 0, len(entries))
	for _, entry := range entries {
		statuses = append(statuses, ServiceStatusResponse{
			ServiceID:         entry.ServiceID,
			Name:              entry.Name,
			Category:          entry.Category,
			Available:         entry.Available,
			QuantityAvailable: entry.QuantityAvailable,
			Reason:            entry.Reason,
		})
	}
	return statuses
}
