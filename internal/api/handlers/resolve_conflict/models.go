package resolve_conflict

import (
	"github.com/m04kA/SMC-CalendarService/internal/service/conflicts/models"
)

// ResolveConflictRequest HTTP request model
type ResolveConflictRequest struct {
	ResolutionNotes string `json:"resolutionNotes,omitempty"`
	ResolvedBy      string `json:"resolvedBy,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ResolveConflictRequest) ToServiceRequest(tenantID, conflictID int64) *models.ResolveConflictRequest {
	return &models.ResolveConflictRequest{
		TenantID:        tenantID,
		ConflictID:      conflictID,
		ResolutionNotes: r.ResolutionNotes,
		ResolvedBy:      r.ResolvedBy,
	}
}
