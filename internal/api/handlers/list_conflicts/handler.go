package list_conflicts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/conflicts"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidParams   = "некорректные параметры запроса"
	msgInvalidFilter   = "некорректный фильтр конфликтов"
)

type Handler struct {
	service ConflictService
	logger  Logger
}

func NewHandler(service ConflictService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/conflicts
// Query params: status, type, bookingId, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /conflicts - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	serviceReq, err := ToServiceRequest(tenantID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /conflicts - Invalid parameters: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, conflicts.ErrInvalidInput):
			h.logger.Warn("GET /conflicts - Invalid filter: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /conflicts - Failed to get conflicts: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /conflicts - Conflicts retrieved successfully: tenant_id=%d, count=%d",
		tenantID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, result.Conflicts)
}
