package detect_conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/service"
)

// UseCase use case для консультативной проверки конфликтов без создания
// бронирования
type UseCase struct {
	serviceRepo ServiceRepository
	detector    ConflictDetector
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(serviceRepo ServiceRepository, detector ConflictDetector, logger Logger) *UseCase {
	return &UseCase{
		serviceRepo: serviceRepo,
		detector:    detector,
		logger:      logger,
	}
}

// Execute выполняет проверку конфликтов для гипотетического бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DetectConflicts: tenant=%d, window=[%s, %s), services=%d",
		req.TenantID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), len(req.Services))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DetectConflicts: validation failed: %v", err)
		return nil, err
	}

	window := domain.TimeWindow{Start: req.StartTime, End: req.EndTime}

	// 2. Разрешаем услуги из каталога, неразрешенные отбрасываем
	requested, checked, dropped, err := uc.resolveServices(ctx, req.TenantID, req.Services)
	if err != nil {
		return nil, err
	}

	if len(requested) == 0 {
		uc.logger.Warn("DetectConflicts: no valid services for tenant=%d, dropped=%v", req.TenantID, dropped)
		return nil, ErrNoValidServices
	}

	// 3. Детектируем конфликты по текущей занятости
	records, err := uc.detector.Detect(ctx, req.TenantID, window, requested, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("DetectConflicts: detector failed for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to detect conflicts: %v", ErrInternal, err)
	}

	uc.logger.Info("DetectConflicts: tenant=%d, found %d conflicts", req.TenantID, len(records))

	return &Response{
		HasConflicts:    len(records) > 0,
		Conflicts:       fromDomainConflicts(records),
		CheckedServices: checked,
		DroppedServices: dropped,
	}, nil
}

// resolveServices разрешает ссылки на услуги, складывая количества
// повторных ссылок
func (uc *UseCase) resolveServices(ctx context.Context, tenantID int64, refs []domain.ServiceRef) ([]domain.RequestedService, []CheckedService, []string, error) {
	requested := make([]domain.RequestedService, 0, len(refs))
	dropped := make([]string, 0)
	byID := make(map[int64]int)

	for _, ref := range refs {
		var (
			item *domain.ServiceItem
			err  error
		)

		if ref.ID != nil {
			item, err = uc.serviceRepo.GetActiveByID(ctx, tenantID, *ref.ID)
		} else {
			item, err = uc.serviceRepo.FindActiveByName(ctx, tenantID, *ref.Name)
		}

		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				dropped = append(dropped, serviceRefLabel(ref))
				continue
			}
			uc.logger.Error("DetectConflicts: failed to resolve service %s: %v", serviceRefLabel(ref), err)
			return nil, nil, nil, fmt.Errorf("%w: failed to resolve service: %v", ErrInternal, err)
		}

		if idx, ok := byID[item.ID]; ok {
			requested[idx].Quantity += ref.RequestedQuantity()
			continue
		}

		byID[item.ID] = len(requested)
		requested = append(requested, domain.RequestedService{Service: *item, Quantity: ref.RequestedQuantity()})
	}

	checked := make([]CheckedService, 0, len(requested))
	for _, rs := range requested {
		checked = append(checked, CheckedService{
			ID:       rs.Service.ID,
			Name:     rs.Service.Name,
			Quantity: rs.Quantity,
		})
	}

	return requested, checked, dropped, nil
}
