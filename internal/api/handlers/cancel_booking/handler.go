package cancel_booking

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
	msgCannotCancel       = "бронирование не может быть отменено"
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

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	// Тело опционально: отмена без причины допустима
	var req CancelBookingRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Cancel(r.Context(), req.ToServiceRequest(tenantID, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%d, tenant_id=%d",
				bookingID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("POST /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, tenant_id=%d",
		bookingID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
