package detect_conflicts

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	detectConflicts "github.com/m04kA/SMC-CalendarService/internal/usecase/detect_conflicts"
)

// ServiceRefRequest услуга в HTTP запросе: по id или по имени
type ServiceRefRequest struct {
	ID       *int64  `json:"id,omitempty"`
	Name     *string `json:"name,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
}

// DetectConflictsRequest HTTP request model
type DetectConflictsRequest struct {
	StartTime time.Time           `json:"startTime"`
	EndTime   time.Time           `json:"endTime"`
	Services  []ServiceRefRequest `json:"services"`

	// ExcludeBookingID исключает бронирование из учета занятости
	// при проверке переноса
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty"`
}

// SuggestedSlotResponse альтернативное окно в HTTP ответе
type SuggestedSlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConflictResponse обнаруженный конфликт в HTTP ответе
type ConflictResponse struct {
	ConflictType         string                  `json:"conflictType"`
	Severity             string                  `json:"severity"`
	ServiceID            *int64                  `json:"serviceId,omitempty"`
	ConflictingBookingID *int64                  `json:"conflictingBookingId,omitempty"`
	Description          string                  `json:"description"`
	SuggestedSlots       []SuggestedSlotResponse `json:"suggestedSlots"`
}

// CheckedServiceResponse услуга, учтенная в проверке
type CheckedServiceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DetectConflictsResponse HTTP response model
type DetectConflictsResponse struct {
	HasConflicts bool               `json:"hasConflicts"`
	Conflicts    []ConflictResponse `json:"conflicts"`

	CheckedServices []CheckedServiceResponse `json:"checkedServices"`
	DroppedServices []string                 `json:"droppedServices,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DetectConflictsRequest) ToUseCaseRequest(tenantID int64) *detectConflicts.Request {
	services := make([]domain.ServiceRef, 0, len(r.Services))
	for _, svc := range r.Services {
		services = append(services, domain.ServiceRef{
			ID:       svc.ID,
			Name:     svc.Name,
			Quantity: svc.Quantity,
		})
	}

	return &detectConflicts.Request{
		TenantID:         tenantID,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Services:         services,
		ExcludeBookingID: r.ExcludeBookingID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *detectConflicts.Response) *DetectConflictsResponse {
	conflicts := make([]ConflictResponse, 0, len(resp.Conflicts))
	for _, c := range resp.Conflicts {
		slots := make([]SuggestedSlotResponse, 0, len(c.SuggestedSlots))
		for _, slot := range c.SuggestedSlots {
			slots = append(slots, SuggestedSlotResponse{Start: slot.Start, End: slot.End})
		}

		conflicts = append(conflicts, ConflictResponse{
			ConflictType:         c.Type,
			Severity:             c.Severity,
			ServiceID:            c.ServiceID,
			ConflictingBookingID: c.ConflictingBookingID,
			Description:          c.Description,
			SuggestedSlots:       slots,
		})
	}

	checked := make([]CheckedServiceResponse, 0, len(resp.CheckedServices))
	for _, svc := range resp.CheckedServices {
		checked = append(checked, CheckedServiceResponse{
			ID:       svc.ID,
			Name:     svc.Name,
			Quantity: svc.Quantity,
		})
	}

	return &DetectConflictsResponse{
		HasConflicts:    resp.HasConflicts,
		Conflicts:       conflicts,
		CheckedServices: checked,
		DroppedServices: resp.DroppedServices,
	}
}
