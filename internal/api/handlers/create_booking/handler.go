package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные данные бронирования"
	msgNoValidServices    = "ни одна из запрошенных услуг не найдена в каталоге"
	msgCustomerNotFound   = "клиент не найден"
	msgConcurrentUpdate   = "параллельное бронирование тех же услуг, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrNoValidServices):
			h.logger.Warn("POST /bookings - No valid services: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgNoValidServices)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings - Concurrent booking: tenant_id=%d", tenantID)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, tenant_id=%d, status=%s, conflicts=%d",
		result.ID, tenantID, result.Status, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
