package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе разрешения
	ErrInvalidStatus = errors.New("invalid resolution status")
	// ErrInvalidConflictType возвращается при некорректном типе конфликта
	ErrInvalidConflictType = errors.New("invalid conflict type")
)

// Request модели

// ListConflictsRequest запрос на получение журнала конфликтов
type ListConflictsRequest struct {
	TenantID  int64   `json:"tenantId"`
	Status    *string `json:"status,omitempty"`    // Фильтр по статусу разрешения (опционально)
	BookingID *int64  `json:"bookingId,omitempty"` // Фильтр по бронированию (опционально)
	Type      *string `json:"type,omitempty"`      // Фильтр по типу конфликта (опционально)
	Limit     int     `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListConflictsRequest) ToDomainFilter() (domain.ConflictsFilter, error) {
	filter := domain.ConflictsFilter{
		TenantID:  r.TenantID,
		BookingID: r.BookingID,
		Limit:     r.Limit,
	}

	if r.Status != nil {
		status := domain.ResolutionStatus(*r.Status)
		if !domain.IsValidResolutionStatus(status) {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if r.Type != nil {
		conflictType := domain.ConflictType(*r.Type)
		if !domain.IsValidConflictType(conflictType) {
			return filter, ErrInvalidConflictType
		}
		filter.Type = &conflictType
	}

	return filter, nil
}

// ResolveConflictRequest запрос на разрешение конфликта
type ResolveConflictRequest struct {
	TenantID        int64  `json:"tenantId"`
	ConflictID      int64  `json:"conflictId"`
	ResolutionNotes string `json:"resolutionNotes"`
	ResolvedBy      string `json:"resolvedBy"`
}

// Response модели

// SuggestedSlotResponse альтернативный слот в ответе
type SuggestedSlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConflictResponse ответ с данными конфликта
type ConflictResponse struct {
	ID                   int64                   `json:"id"`
	TenantID             int64                   `json:"tenantId"`
	Type                 string                  `json:"conflictType"`
	Severity             string                  `json:"severity"`
	BookingID            *int64                  `json:"bookingId,omitempty"`
	ConflictingBookingID *int64                  `json:"conflictingBookingId,omitempty"`
	ServiceID            *int64                  `json:"serviceId,omitempty"`
	Description          string                  `json:"description"`
	SuggestedSlots       []SuggestedSlotResponse `json:"suggestedSlots"`
	ResolutionStatus     string                  `json:"resolutionStatus"`
	ResolvedAt           *time.Time              `json:"resolvedAt,omitempty"`
	ResolutionNotes      string                  `json:"resolutionNotes,omitempty"`
	ResolvedBy           string                  `json:"resolvedBy,omitempty"`
	CreatedAt            time.Time               `json:"createdAt"`
	UpdatedAt            time.Time               `json:"updatedAt"`
}

// ConflictListResponse ответ со списком конфликтов
type ConflictListResponse struct {
	Conflicts []ConflictResponse `json:"conflicts"`
}

// Методы конвертации

// FromDomainConflict конвертирует domain модель в DTO
func FromDomainConflict(record *domain.ConflictRecord) *ConflictResponse {
	if record == nil {
		return nil
	}

	slots := make([]SuggestedSlotResponse, 0, len(record.SuggestedSlots))
	for _, slot := range record.SuggestedSlots {
		slots = append(slots, SuggestedSlotResponse{Start: slot.Start, End: slot.End})
	}

	return &ConflictResponse{
		ID:                   record.ID,
		TenantID:             record.TenantID,
		Type:                 string(record.Type),
		Severity:             string(record.Severity),
		BookingID:            record.BookingID,
		ConflictingBookingID: record.ConflictingBookingID,
		ServiceID:            record.ServiceID,
		Description:          record.Description,
		SuggestedSlots:       slots,
		ResolutionStatus:     string(record.ResolutionStatus),
		ResolvedAt:           record.ResolvedAt,
		ResolutionNotes:      record.ResolutionNotes,
		ResolvedBy:           record.ResolvedBy,
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
	}
}

// FromDomainConflictList конвертирует список domain моделей в DTO
func FromDomainConflictList(records []domain.ConflictRecord) *ConflictListResponse {
	resp := &ConflictListResponse{
		Conflicts: make([]ConflictResponse, 0, len(records)),
	}

	for i := range records {
		if conflictResp := FromDomainConflict(&records[i]); conflictResp != nil {
			resp.Conflicts = append(resp.Conflicts, *conflictResp)
		}
	}

	return resp
}
