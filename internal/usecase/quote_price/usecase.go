package quote_price

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/service"
)

// UseCase use case для котировки стоимости услуги без создания бронирования
type UseCase struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(serviceRepo ServiceRepository, logger Logger) *UseCase {
	return &UseCase{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Execute считает стоимость услуги за окно времени по ее тарифной сетке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: tenant=%d, service=%s, window=[%s, %s)",
		req.TenantID, serviceRefLabel(req.Service), req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем услугу из каталога
	var (
		item *domain.ServiceItem
		err  error
	)

	if req.Service.ID != nil {
		item, err = uc.serviceRepo.GetActiveByID(ctx, req.TenantID, *req.Service.ID)
	} else {
		item, err = uc.serviceRepo.FindActiveByName(ctx, req.TenantID, *req.Service.Name)
	}

	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("QuotePrice: service %s not found for tenant=%d", serviceRefLabel(req.Service), req.TenantID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("QuotePrice: failed to resolve service %s: %v", serviceRefLabel(req.Service), err)
		return nil, fmt.Errorf("%w: failed to resolve service: %v", ErrInternal, err)
	}

	// 3. Считаем стоимость по тарифной сетке
	window := domain.TimeWindow{Start: req.StartTime, End: req.EndTime}
	hours := window.Hours()
	quantity := req.Service.RequestedQuantity()

	unitPrice := item.PriceForDuration(hours)
	totalPrice := unitPrice * float64(quantity)

	uc.logger.Info("QuotePrice: tenant=%d, service=%d, hours=%.2f, unit=%.2f, total=%.2f",
		req.TenantID, item.ID, hours, unitPrice, totalPrice)

	return &Response{
		ServiceID:     item.ID,
		ServiceName:   item.Name,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: hours,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalPrice:    totalPrice,
		BasePrice:     item.BasePrice,
		PricePerHour:  item.PricePerHour,
		PricePerDay:   item.PricePerDay,
		PricePerWeek:  item.PricePerWeek,
	}, nil
}
