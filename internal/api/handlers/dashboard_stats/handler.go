package dashboard_stats

import (
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
)

const msgMissingTenantID = "отсутствует ID тенанта"

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dashboard/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /dashboard/stats - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.Dashboard(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /dashboard/stats - Failed to build stats: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dashboard/stats - Stats retrieved successfully: tenant_id=%d, bookings=%d",
		tenantID, result.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
