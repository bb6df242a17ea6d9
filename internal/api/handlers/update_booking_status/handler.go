package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgNotFound           = "бронирование не найдено"
	msgInvalidStatus      = "некорректный статус бронирования"
	msgInvalidTransition  = "недопустимый переход статуса"
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

// Handle PUT /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id}/status - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), req.ToServiceRequest(tenantID, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/status - Booking not found: booking_id=%d, tenant_id=%d",
				bookingID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id}/status - Invalid status: booking_id=%d, status=%s",
				bookingID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/{id}/status - Invalid transition: booking_id=%d, status=%s",
				bookingID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PUT /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/status - Status updated successfully: booking_id=%d, tenant_id=%d, status=%s",
		bookingID, tenantID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
