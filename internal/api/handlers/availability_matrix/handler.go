package availability_matrix

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	availabilityMatrix "github.com/m04kA/SMC-CalendarService/internal/usecase/availability_matrix"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidParams   = "некорректные параметры запроса"
	msgInvalidInput    = "некорректные параметры матрицы доступности"
	msgRangeTooWide    = "слишком широкий диапазон дат"
)

type Handler struct {
	useCase AvailabilityMatrixUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityMatrixUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/matrix
// Query params: from, to (обязательно), serviceIds, category (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /availability/matrix - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability/matrix - Invalid parameters: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, availabilityMatrix.ErrRangeTooWide):
			h.logger.Warn("GET /availability/matrix - Range too wide: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, availabilityMatrix.ErrInvalidInput):
			h.logger.Warn("GET /availability/matrix - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability/matrix - Failed to build matrix: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/matrix - Matrix built successfully: tenant_id=%d, days=%d",
		tenantID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
