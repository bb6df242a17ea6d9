package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// UseCase use case для проверки доступности услуг в окне времени
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

// Execute выполняет проверку доступности каждой запрошенной услуги
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: tenant=%d, services=%v, window=[%s, %s)",
		req.TenantID, req.ServiceIDs, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	window := domain.TimeWindow{Start: req.StartTime, End: req.EndTime}

	// 2. Оценка доступности по текущей занятости
	entries, err := uc.calculator.CheckByIDs(ctx, req.TenantID, req.ServiceIDs, window, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckAvailability: calculator failed for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
	}

	services, allAvailable := fromDomainAvailability(entries)

	uc.logger.Info("CheckAvailability: tenant=%d, %d services checked, allAvailable=%t",
		req.TenantID, len(services), allAvailable)

	return &Response{
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		AllAvailable: allAvailable,
		Services:     services,
	}, nil
}
