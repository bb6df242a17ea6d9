package resolve_conflict

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/conflicts"
)

const (
	msgInvalidConflictID  = "некорректный ID конфликта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgNotFound           = "конфликт не найден"
	msgInvalidInput       = "некорректные данные разрешения конфликта"
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

// Handle POST /api/v1/conflicts/{conflictId}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем conflictId из URL
	vars := mux.Vars(r)
	conflictIDStr := vars["conflictId"]

	conflictID, err := strconv.ParseInt(conflictIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /conflicts/{id}/resolve - Invalid conflict ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConflictID)
		return
	}

	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /conflicts/{id}/resolve - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	// Тело опционально: разрешение без заметок допустимо
	var req ResolveConflictRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /conflicts/{id}/resolve - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Resolve(r.Context(), req.ToServiceRequest(tenantID, conflictID))
	if err != nil {
		switch {
		case errors.Is(err, conflicts.ErrConflictNotFound):
			h.logger.Warn("POST /conflicts/{id}/resolve - Conflict not found: conflict_id=%d, tenant_id=%d",
				conflictID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, conflicts.ErrInvalidInput):
			h.logger.Warn("POST /conflicts/{id}/resolve - Invalid input: conflict_id=%d, error=%v",
				conflictID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /conflicts/{id}/resolve - Failed to resolve conflict: conflict_id=%d, error=%v",
				conflictID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /conflicts/{id}/resolve - Conflict resolved successfully: conflict_id=%d, tenant_id=%d",
		conflictID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
