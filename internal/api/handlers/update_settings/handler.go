package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidSettings    = "некорректные настройки календаря"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /settings - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /settings - Invalid settings: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /settings - Failed to update settings: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings - Settings updated successfully: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
