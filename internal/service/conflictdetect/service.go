package conflictdetect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/settings"
)

// Service детектор конфликтов бронирования.
// Проверки только советуют: сами по себе они ничего не блокируют, решение
// принимает вызывающая сторона по серьезности найденных конфликтов.
type Service struct {
	availability AvailabilityCalculator
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр детектора конфликтов
func NewService(
	availability AvailabilityCalculator,
	settingsRepo SettingsRepository,
	logger Logger,
) *Service {
	return &Service{
		availability: availability,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Detect прогоняет все проверки для запрошенного окна и набора услуг и
// возвращает объединенный список конфликтов:
//
//  1. лимитированные услуги: прогнозная занятость (текущая + запрошенное
//     количество) выше общего числа единиц - по одному конфликту
//     service_overlap на каждое пересекающееся бронирование;
//  2. уникальные услуги: любое пересечение с активным бронированием -
//     availability_limit;
//  3. рабочие часы: окно выходит за рабочие часы тенанта - business_hours.
//     Без настроек тенанта ограничение не действует.
//
// excludeBookingID исключает собственное бронирование при перепроверке
// существующей записи.
func (s *Service) Detect(ctx context.Context, tenantID int64, window domain.TimeWindow, requested []domain.RequestedService, excludeBookingID *int64) ([]domain.ConflictRecord, error) {
	s.logger.Info("Detect: checking conflicts for tenant=%d, services=%d, window=%s..%s",
		tenantID, len(requested), window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))

	records := make([]domain.ConflictRecord, 0)

	evaluated, err := s.availability.Evaluate(ctx, tenantID, requested, window, excludeBookingID)
	if err != nil {
		s.logger.Error("Detect: availability evaluation failed for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Detect - evaluate availability: %v", ErrInternal, err)
	}

	// 1. Перегрузка лимитированных услуг
	for i, entry := range evaluated {
		req := requested[i]
		if req.Service.AvailabilityType != domain.AvailabilityLimited {
			continue
		}
		// Недоступность по другой причине (неактивная услуга) конфликтом занятости не считается
		if entry.Reason != domain.ReasonFullyBooked {
			continue
		}

		for _, ref := range entry.Overlapping {
			records = append(records, s.serviceOverlapRecord(tenantID, req, entry, ref, window))
		}
	}

	// 2. Уникальные услуги: любое пересечение критично
	for i, entry := range evaluated {
		req := requested[i]
		if req.Service.AvailabilityType != domain.AvailabilityUnique || !req.Service.Active {
			continue
		}
		if len(entry.Overlapping) == 0 {
			continue
		}

		records = append(records, s.uniqueItemRecord(tenantID, req.Service, entry.Overlapping))
	}

	// 3. Рабочие часы тенанта
	businessHoursRecord, err := s.checkBusinessHours(ctx, tenantID, window)
	if err != nil {
		return nil, err
	}
	if businessHoursRecord != nil {
		records = append(records, *businessHoursRecord)
	}

	s.logger.Info("Detect: found %d conflicts for tenant=%d", len(records), tenantID)
	return records, nil
}

// serviceOverlapRecord строит конфликт перегрузки лимитированной услуги с
// конкретным пересекающимся бронированием
func (s *Service) serviceOverlapRecord(tenantID int64, req domain.RequestedService, entry domain.ServiceAvailability, ref domain.BookingRef, window domain.TimeWindow) domain.ConflictRecord {
	serviceID := req.Service.ID
	conflictingID := ref.BookingID

	return domain.ConflictRecord{
		TenantID:             tenantID,
		Type:                 domain.ConflictServiceOverlap,
		Severity:             domain.SeverityHigh,
		ConflictingBookingID: &conflictingID,
		ServiceID:            &serviceID,
		Description: fmt.Sprintf("Service '%s' overlaps with booking '%s': %d of %d units already reserved",
			req.Service.Name, ref.Title, entry.QuantityUsed, entry.QuantityTotal),
		SuggestedSlots:   suggestSlots(window, ref),
		ResolutionStatus: domain.ResolutionDetected,
	}
}

// uniqueItemRecord строит конфликт занятости уникальной услуги.
// В качестве конфликтующего указывается самое раннее пересекающееся
// бронирование, слоты не предлагаются.
func (s *Service) uniqueItemRecord(tenantID int64, item domain.ServiceItem, overlapping []domain.BookingRef) domain.ConflictRecord {
	serviceID := item.ID
	conflictingID := overlapping[0].BookingID

	return domain.ConflictRecord{
		TenantID:             tenantID,
		Type:                 domain.ConflictAvailabilityLimit,
		Severity:             domain.SeverityCritical,
		ConflictingBookingID: &conflictingID,
		ServiceID:            &serviceID,
		Description:          fmt.Sprintf("%s is a unique item and is already booked during this time", item.Name),
		SuggestedSlots:       []domain.SuggestedSlot{},
		ResolutionStatus:     domain.ResolutionDetected,
	}
}

// checkBusinessHours сравнивает время суток границ окна с рабочими часами.
// Сравнивается именно время суток: многодневное бронирование с границами
// внутри рабочих часов нарушением не считается.
func (s *Service) checkBusinessHours(ctx context.Context, tenantID int64, window domain.TimeWindow) (*domain.ConflictRecord, error) {
	tenantSettings, err := s.settingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			// Нет настроек - нет ограничения рабочих часов
			return nil, nil
		}
		s.logger.Error("checkBusinessHours: failed to load settings for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: checkBusinessHours - load settings: %v", ErrInternal, err)
	}

	if !tenantSettings.HasBusinessHours() {
		return nil, nil
	}

	startOfBusiness, err := tenantSettings.BusinessHoursStart.MinutesFromMidnight()
	if err != nil {
		s.logger.Warn("checkBusinessHours: invalid business_hours_start=%q for tenant=%d: %v",
			tenantSettings.BusinessHoursStart, tenantID, err)
		return nil, nil
	}
	endOfBusiness, err := tenantSettings.BusinessHoursEnd.MinutesFromMidnight()
	if err != nil {
		s.logger.Warn("checkBusinessHours: invalid business_hours_end=%q for tenant=%d: %v",
			tenantSettings.BusinessHoursEnd, tenantID, err)
		return nil, nil
	}

	startClock := window.Start.Hour()*60 + window.Start.Minute()
	endClock := window.End.Hour()*60 + window.End.Minute()

	if startClock >= startOfBusiness && endClock <= endOfBusiness {
		return nil, nil
	}

	record := domain.ConflictRecord{
		TenantID: tenantID,
		Type:     domain.ConflictBusinessHours,
		Severity: domain.SeverityMedium,
		Description: fmt.Sprintf("Booking is outside business hours (%s - %s)",
			tenantSettings.BusinessHoursStart, tenantSettings.BusinessHoursEnd),
		SuggestedSlots:   []domain.SuggestedSlot{snapToBusinessHours(window, tenantSettings)},
		ResolutionStatus: domain.ResolutionDetected,
	}

	return &record, nil
}

// suggestSlots предлагает до двух альтернативных слотов той же длительности:
// раньше, впритык к началу конфликтующего бронирования, и позже, сразу после
// его конца. Слот предлагается только если сдвиг в эту сторону вообще есть.
func suggestSlots(window domain.TimeWindow, ref domain.BookingRef) []domain.SuggestedSlot {
	slots := make([]domain.SuggestedSlot, 0, 2)
	duration := window.Duration()

	if ref.StartTime.After(window.Start) {
		slots = append(slots, domain.SuggestedSlot{
			Start: ref.StartTime.Add(-duration),
			End:   ref.StartTime,
		})
	}

	if ref.EndTime.Before(window.End) {
		slots = append(slots, domain.SuggestedSlot{
			Start: ref.EndTime,
			End:   ref.EndTime.Add(duration),
		})
	}

	return slots
}

// snapToBusinessHours предлагает рабочее окно тех же дат: от начала рабочих
// часов в день начала до конца рабочих часов в день окончания
func snapToBusinessHours(window domain.TimeWindow, tenantSettings *domain.CalendarSettings) domain.SuggestedSlot {
	bhStart, errStart := tenantSettings.BusinessHoursStart.Parse()
	bhEnd, errEnd := tenantSettings.BusinessHoursEnd.Parse()
	if errStart != nil || errEnd != nil {
		return domain.SuggestedSlot{Start: window.Start, End: window.End}
	}

	start := window.Start
	end := window.End

	return domain.SuggestedSlot{
		Start: time.Date(start.Year(), start.Month(), start.Day(), bhStart.Hour(), bhStart.Minute(), 0, 0, start.Location()),
		End:   time.Date(end.Year(), end.Month(), end.Day(), bhEnd.Hour(), bhEnd.Minute(), 0, 0, end.Location()),
	}
}
