package get_tenant_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidParams   = "некорректные параметры запроса"
	msgInvalidFilter   = "некорректный фильтр бронирований"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: customerId, serviceId, status, from, to, includeInactive, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	serviceReq, err := ToServiceRequest(tenantID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid parameters: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: tenant_id=%d, count=%d",
		tenantID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
