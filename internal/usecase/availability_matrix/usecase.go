package availability_matrix

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// UseCase use case для построения поденной матрицы доступности
type UseCase struct {
	calculator AvailabilityCalculator
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calculator AvailabilityCalculator, logger Logger) *UseCase {
	return &UseCase{
		calculator: calculator,
		logger:     logger,
	}
}

// Execute строит матрицу доступности услуг по дням периода
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AvailabilityMatrix: tenant=%d, period=[%s, %s], services=%d",
		req.TenantID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), len(req.ServiceIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AvailabilityMatrix: validation failed: %v", err)
		return nil, err
	}

	// 2. Поденная оценка занятости
	matrix, err := uc.calculator.Matrix(ctx, req.TenantID, req.From, req.To, req.ServiceIDs, req.Category)
	if err != nil {
		uc.logger.Error("AvailabilityMatrix: calculator failed for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to build matrix: %v", ErrInternal, err)
	}

	uc.logger.Info("AvailabilityMatrix: tenant=%d, built %d days", req.TenantID, len(matrix.Days))

	return fromDomainMatrix(matrix), nil
}
