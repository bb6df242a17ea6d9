package execute_ai_action

import (
	"context"

	executeAIAction "github.com/m04kA/SMC-CalendarService/internal/usecase/execute_ai_action"
)

type ExecuteAIActionUseCase interface {
	Execute(ctx context.Context, req *executeAIAction.Request) (*executeAIAction.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
