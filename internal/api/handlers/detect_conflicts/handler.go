package detect_conflicts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	detectConflicts "github.com/m04kA/SMC-CalendarService/internal/usecase/detect_conflicts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные параметры проверки конфликтов"
	msgNoValidServices    = "ни одна из запрошенных услуг не найдена в каталоге"
)

type Handler struct {
	useCase DetectConflictsUseCase
	logger  Logger
}

func NewHandler(useCase DetectConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/conflicts/detect
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /conflicts/detect - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req DetectConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /conflicts/detect - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, detectConflicts.ErrNoValidServices):
			h.logger.Warn("POST /conflicts/detect - No valid services: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgNoValidServices)

		case errors.Is(err, detectConflicts.ErrInvalidInput):
			h.logger.Warn("POST /conflicts/detect - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /conflicts/detect - Failed to detect conflicts: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /conflicts/detect - Detection finished: tenant_id=%d, conflicts=%d",
		tenantID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
