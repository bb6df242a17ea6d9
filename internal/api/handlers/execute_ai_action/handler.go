package execute_ai_action

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	executeAIAction "github.com/m04kA/SMC-CalendarService/internal/usecase/execute_ai_action"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidParams      = "некорректные параметры действия"
	msgInvalidInput       = "некорректные данные действия"
)

type Handler struct {
	useCase ExecuteAIActionUseCase
	logger  Logger
}

func NewHandler(useCase ExecuteAIActionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/assistant/actions
// Бизнес-отказы (неизвестное действие, занятые услуги) возвращаются как
// 200 с success=false: ассистент должен получить текст для пользователя.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware Auth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /assistant/actions - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req ExecuteActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /assistant/actions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /assistant/actions - Invalid parameters: tenant_id=%d, action=%s, error=%v",
			tenantID, req.Action, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, executeAIAction.ErrInvalidInput):
			h.logger.Warn("POST /assistant/actions - Invalid input: tenant_id=%d, action=%s, error=%v",
				tenantID, req.Action, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /assistant/actions - Failed to execute action: tenant_id=%d, action=%s, error=%v",
				tenantID, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /assistant/actions - Action executed: tenant_id=%d, action=%s, success=%t",
		tenantID, req.Action, result.Success)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
