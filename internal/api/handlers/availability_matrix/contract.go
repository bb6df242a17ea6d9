package availability_matrix

import (
	"context"

	availabilityMatrix "github.com/m04kA/SMC-CalendarService/internal/usecase/availability_matrix"
)

type AvailabilityMatrixUseCase interface {
	Execute(ctx context.Context, req *availabilityMatrix.Request) (*availabilityMatrix.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
