package execute_ai_action

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/service"
	bookingsService "github.com/m04kA/SMC-CalendarService/internal/service/bookings"
	bookingmodels "github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

// Уверенность по умолчанию, когда ассистент ее не передал
const defaultConfidence = 0.8

// Сколько имен услуг попадает в подсказки check_service_exists
const maxSuggestions = 5

// UseCase use case для выполнения структурированных действий AI ассистента.
// Маршрутизирует действие к создателю бронирований, отмене или проверкам
// каталога и доступности.
type UseCase struct {
	creator     BookingCreator
	canceller   BookingCanceller
	calculator  AvailabilityCalculator
	serviceRepo ServiceRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	creator BookingCreator,
	canceller BookingCanceller,
	calculator AvailabilityCalculator,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		creator:     creator,
		canceller:   canceller,
		calculator:  calculator,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Execute выполняет действие ассистента. Неизвестное действие и бизнес-отказы
// возвращаются как Success=false, ошибкой считаются только внутренние сбои.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExecuteAIAction: tenant=%d, action=%s", req.TenantID, req.Action)

	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	switch req.Action {
	case ActionCreateBooking:
		return uc.handleCreateBooking(ctx, req)
	case ActionCancelBooking:
		return uc.handleCancelBooking(ctx, req)
	case ActionCheckAvailability:
		return uc.handleCheckAvailability(ctx, req)
	case ActionCheckServiceExists:
		return uc.handleCheckServiceExists(ctx, req)
	default:
		uc.logger.Warn("ExecuteAIAction: unknown action %q for tenant=%d", req.Action, req.TenantID)
		return failure(fmt.Sprintf("Unknown action type: %s", req.Action)), nil
	}
}

func (uc *UseCase) handleCreateBooking(ctx context.Context, req *Request) (*Response, error) {
	params := req.CreateBooking
	if params == nil {
		return failure("Booking parameters are required"), nil
	}

	confidence := req.Confidence
	if confidence == nil {
		confidence = ptr.Ptr(defaultConfidence)
	}

	services := make([]domain.ServiceRef, 0, len(params.Services))
	for _, sel := range params.Services {
		services = append(services, domain.ServiceRef{
			ID:       sel.ID,
			Name:     sel.Name,
			Quantity: sel.Quantity,
		})
	}

	resp, err := uc.creator.Execute(ctx, &create_booking.Request{
		TenantID:  req.TenantID,
		Title:     params.Title,
		Notes:     params.Notes,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Customer: domain.CustomerRef{
			ID:    params.Customer.ID,
			Name:  params.Customer.Name,
			Email: params.Customer.Email,
			Phone: params.Customer.Phone,
		},
		Services:     services,
		Source:       domain.SourceAIAssistant,
		AISessionID:  req.SessionID,
		AIMessageID:  req.MessageID,
		AIConfidence: confidence,
	})
	if err != nil {
		// Ошибки данных превращаются в отказ с текстом для ассистента
		if errors.Is(err, create_booking.ErrInvalidInput) ||
			errors.Is(err, create_booking.ErrNoValidServices) ||
			errors.Is(err, create_booking.ErrCustomerNotFound) ||
			errors.Is(err, create_booking.ErrConcurrentUpdate) {
			uc.logger.Warn("ExecuteAIAction: create_booking rejected for tenant=%d: %v", req.TenantID, err)
			return failure(fmt.Sprintf("Failed to create booking: %v", err)), nil
		}
		uc.logger.Error("ExecuteAIAction: create_booking failed for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	message := "Booking created successfully"
	if resp.AutoConfirmed {
		message = "Booking confirmed successfully"
	}

	uc.logger.Info("ExecuteAIAction: created booking id=%d for tenant=%d", resp.ID, req.TenantID)

	return &Response{
		Success: true,
		Message: message,
		Booking: resp,
	}, nil
}

func (uc *UseCase) handleCancelBooking(ctx context.Context, req *Request) (*Response, error) {
	params := req.CancelBooking
	if params == nil || params.BookingID <= 0 {
		return failure("Booking ID is required for cancellation"), nil
	}

	cancelled, err := uc.canceller.Cancel(ctx, &bookingmodels.CancelBookingRequest{
		TenantID:    req.TenantID,
		BookingID:   params.BookingID,
		Reason:      params.Reason,
		CancelledBy: string(domain.SourceAIAssistant),
	})
	if err != nil {
		if errors.Is(err, bookingsService.ErrBookingNotFound) {
			return failure("Booking not found"), nil
		}
		if errors.Is(err, bookingsService.ErrCannotCancel) {
			return failure("Booking cannot be cancelled"), nil
		}
		uc.logger.Error("ExecuteAIAction: cancel_booking failed for tenant=%d, booking=%d: %v",
			req.TenantID, params.BookingID, err)
		return nil, err
	}

	uc.logger.Info("ExecuteAIAction: cancelled booking id=%d for tenant=%d", cancelled.ID, req.TenantID)

	return &Response{
		Success: true,
		Message: "Booking cancelled successfully",
		Cancelled: &CancelledBooking{
			BookingID: cancelled.ID,
			Status:    cancelled.Status,
		},
	}, nil
}

func (uc *UseCase) handleCheckAvailability(ctx context.Context, req *Request) (*Response, error) {
	params := req.CheckAvailability
	if params == nil || params.StartTime.IsZero() || params.EndTime.IsZero() {
		return failure("Start and end time are required for availability check"), nil
	}
	if !params.EndTime.After(params.StartTime) {
		return failure("End time must be after start time"), nil
	}

	// Разрешаем имена услуг в записи каталога; ненайденные пропускаем
	serviceIDs := make([]int64, 0, len(params.ServiceNames))
	categories := make(map[int64]string)

	for _, name := range params.ServiceNames {
		if name == "" {
			continue
		}

		item, err := uc.serviceRepo.FindActiveByName(ctx, req.TenantID, name)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				continue
			}
			uc.logger.Error("ExecuteAIAction: failed to resolve service %q: %v", name, err)
			return nil, fmt.Errorf("%w: failed to resolve service: %v", ErrInternal, err)
		}

		serviceIDs = append(serviceIDs, item.ID)
		categories[item.ID] = item.Category
	}

	if len(serviceIDs) == 0 {
		return failure("No services found matching the specified names"), nil
	}

	window := domain.TimeWindow{Start: params.StartTime, End: params.EndTime}
	entries, err := uc.calculator.CheckByIDs(ctx, req.TenantID, serviceIDs, window, nil)
	if err != nil {
		uc.logger.Error("ExecuteAIAction: availability check failed for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
	}

	report := &AvailabilityReport{
		StartTime:    params.StartTime,
		EndTime:      params.EndTime,
		Available:    make([]ServiceStatus, 0, len(entries)),
		Unavailable:  make([]ServiceStatus, 0),
		TotalChecked: len(entries),
	}

	for _, entry := range entries {
		status := ServiceStatus{
			ServiceID:         entry.ServiceID,
			Name:              entry.ServiceName,
			Category:          categories[entry.ServiceID],
			Available:         entry.Available,
			QuantityAvailable: entry.QuantityAvailable,
			Reason:            entry.Reason,
		}

		if entry.Available {
			report.Available = append(report.Available, status)
		} else {
			report.Unavailable = append(report.Unavailable, status)
		}
	}

	return &Response{
		Success:      true,
		Message:      fmt.Sprintf("Availability checked for %d services", len(serviceIDs)),
		Availability: report,
	}, nil
}

func (uc *UseCase) handleCheckServiceExists(ctx context.Context, req *Request) (*Response, error) {
	params := req.CheckServiceExists
	if params == nil || params.ServiceName == "" {
		return failure("Service name is required"), nil
	}

	item, err := uc.serviceRepo.FindActiveByName(ctx, req.TenantID, params.ServiceName)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return uc.serviceNotInCatalog(ctx, req.TenantID, params.ServiceName)
		}
		uc.logger.Error("ExecuteAIAction: failed to check service %q: %v", params.ServiceName, err)
		return nil, fmt.Errorf("%w: failed to check service: %v", ErrInternal, err)
	}

	return &Response{
		Success: true,
		Message: fmt.Sprintf("Found service: %s", item.Name),
		ServiceCheck: &ServiceExistsReport{
			Exists: true,
			Service: &ServiceInfo{
				ID:               item.ID,
				Name:             item.Name,
				Category:         item.Category,
				AvailabilityType: string(item.AvailabilityType),
				Quantity:         item.Quantity,
				BasePrice:        item.BasePrice,
			},
		},
	}, nil
}

// serviceNotInCatalog отвечает на check_service_exists подсказками из
// активного каталога тенанта
func (uc *UseCase) serviceNotInCatalog(ctx context.Context, tenantID int64, name string) (*Response, error) {
	suggestions := make([]string, 0, maxSuggestions)

	items, err := uc.serviceRepo.ListActiveByTenant(ctx, tenantID, nil)
	if err != nil {
		// Подсказки необязательны, отказ каталога не ломает ответ
		uc.logger.Warn("ExecuteAIAction: failed to list services for suggestions: %v", err)
	} else {
		for _, item := range items {
			if len(suggestions) == maxSuggestions {
				break
			}
			suggestions = append(suggestions, item.Name)
		}
	}

	return &Response{
		Success: true,
		Message: fmt.Sprintf("Service %q not found in catalog", name),
		ServiceCheck: &ServiceExistsReport{
			Exists:      false,
			Suggestions: suggestions,
		},
	}, nil
}
