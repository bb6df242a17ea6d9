package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
)

const msgMissingTenantID = "отсутствует ID тенанта"

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

// Handle GET /api/v1/settings
// Настройки возвращаются всегда: при отсутствии строки действуют значения
// по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /settings - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.Get(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /settings - Failed to get settings: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings - Settings retrieved successfully: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
