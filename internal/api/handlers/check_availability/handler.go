package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	checkAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные параметры проверки доступности"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /availability/check - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability/check - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability/check - Failed to check availability: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/check - Availability checked: tenant_id=%d, services=%d, all_available=%t",
		tenantID, len(result.Services), result.AllAvailable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
