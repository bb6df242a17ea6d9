package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	quotePrice "github.com/m04kA/SMC-CalendarService/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные параметры котировки"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/pricing/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /pricing/quote - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req QuotePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrServiceNotFound):
			h.logger.Warn("POST /pricing/quote - Service not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /pricing/quote - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /pricing/quote - Failed to quote price: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pricing/quote - Quote calculated: tenant_id=%d, service_id=%d, total=%.2f",
		tenantID, result.ServiceID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
