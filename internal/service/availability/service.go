package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Service считает занятость услуг по активным резервациям.
// Использует строгие полуинтервалы: бронирование, заканчивающееся ровно в
// начале запрошенного окна, занятость не создает.
type Service struct {
	serviceRepo     ServiceRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	serviceRepo ServiceRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:     serviceRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// CheckByIDs проверяет доступность услуг по списку ID в запрошенном окне.
// Порядок ответа повторяет порядок запроса без дублей, несуществующие услуги
// попадают в ответ с причиной not_found.
func (s *Service) CheckByIDs(ctx context.Context, tenantID int64, serviceIDs []int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.ServiceAvailability, error) {
	s.logger.Info("CheckByIDs: checking %d services for tenant=%d window=%s..%s",
		len(serviceIDs), tenantID, window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))

	ids := dedupIDs(serviceIDs)

	items, err := s.serviceRepo.ListByIDs(ctx, tenantID, ids)
	if err != nil {
		s.logger.Error("CheckByIDs: failed to load services for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: CheckByIDs - load services: %v", ErrInternal, err)
	}

	itemsByID := make(map[int64]domain.ServiceItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	requested := make([]domain.RequestedService, 0, len(items))
	for _, id := range ids {
		if item, ok := itemsByID[id]; ok {
			requested = append(requested, domain.RequestedService{Service: item, Quantity: 1})
		}
	}

	evaluated, err := s.Evaluate(ctx, tenantID, requested, window, excludeBookingID)
	if err != nil {
		return nil, err
	}

	evaluatedByID := make(map[int64]domain.ServiceAvailability, len(evaluated))
	for _, entry := range evaluated {
		evaluatedByID[entry.ServiceID] = entry
	}

	results := make([]domain.ServiceAvailability, 0, len(ids))
	for _, id := range ids {
		if entry, ok := evaluatedByID[id]; ok {
			results = append(results, entry)
			continue
		}
		results = append(results, domain.ServiceAvailability{
			ServiceID:   id,
			Available:   false,
			Reason:      domain.ReasonNotFound,
			Overlapping: []domain.BookingRef{},
		})
	}

	return results, nil
}

// Evaluate считает доступность уже загруженных услуг с учетом запрошенных
// количеств. Одна поездка в БД на весь список: детектор конфликтов вызывает
// Evaluate внутри транзакции оформления по заблокированным строкам услуг.
func (s *Service) Evaluate(ctx context.Context, tenantID int64, requested []domain.RequestedService, window domain.TimeWindow, excludeBookingID *int64) ([]domain.ServiceAvailability, error) {
	if len(requested) == 0 {
		return []domain.ServiceAvailability{}, nil
	}

	ids := make([]int64, 0, len(requested))
	for _, req := range requested {
		ids = append(ids, req.Service.ID)
	}

	usages, err := s.reservationRepo.FindOverlappingForServices(ctx, tenantID, ids, window, excludeBookingID)
	if err != nil {
		s.logger.Error("Evaluate: failed to load overlapping reservations for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Evaluate - load overlapping reservations: %v", ErrInternal, err)
	}

	usagesByService := groupUsagesByService(usages)

	results := make([]domain.ServiceAvailability, 0, len(requested))
	for _, req := range requested {
		results = append(results, evaluateService(req.Service, req.Quantity, usagesByService[req.Service.ID]))
	}

	return results, nil
}

// Matrix строит календарную матрицу доступности по дням.
// Резервации за весь диапазон загружаются одним запросом, разбивка по дням
// выполняется в памяти. Границы диапазона включительны.
func (s *Service) Matrix(ctx context.Context, tenantID int64, from, to time.Time, serviceIDs []int64, category *string) (*domain.AvailabilityMatrix, error) {
	s.logger.Info("Matrix: building availability matrix for tenant=%d from=%s to=%s",
		tenantID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	var items []domain.ServiceItem
	var err error

	if len(serviceIDs) > 0 {
		items, err = s.serviceRepo.ListByIDs(ctx, tenantID, dedupIDs(serviceIDs))
	} else {
		items, err = s.serviceRepo.ListActiveByTenant(ctx, tenantID, category)
	}
	if err != nil {
		s.logger.Error("Matrix: failed to load services for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Matrix - load services: %v", ErrInternal, err)
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	span := domain.NewTimeWindow(from, to.AddDate(0, 0, 1))
	usages, err := s.reservationRepo.FindOverlappingForServices(ctx, tenantID, ids, span, nil)
	if err != nil {
		s.logger.Error("Matrix: failed to load overlapping reservations for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Matrix - load overlapping reservations: %v", ErrInternal, err)
	}

	usagesByService := groupUsagesByService(usages)

	days := make([]domain.DayAvailability, 0)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayWindow := domain.NewTimeWindow(day, day.AddDate(0, 0, 1))

		perService := make([]domain.ServiceAvailability, 0, len(items))
		for _, item := range items {
			dayUsages := make([]domain.ReservationUsage, 0)
			for _, usage := range usagesByService[item.ID] {
				if usage.Window().Overlaps(dayWindow) {
					dayUsages = append(dayUsages, usage)
				}
			}

			entry := evaluateService(item, 1, dayUsages)
			// В матрице списки пересекающихся бронирований не возвращаются
			entry.Overlapping = nil
			perService = append(perService, entry)
		}

		days = append(days, domain.DayAvailability{Date: day, Services: perService})
	}

	s.logger.Info("Matrix: built matrix for tenant=%d, %d days x %d services", tenantID, len(days), len(items))
	return &domain.AvailabilityMatrix{From: from, To: to, Days: days}, nil
}

// evaluateService считает сводку занятости одной услуги по ее пересекающимся
// резервациям. usages уже отфильтрованы по окну и активным статусам.
func evaluateService(item domain.ServiceItem, requestedQty int, usages []domain.ReservationUsage) domain.ServiceAvailability {
	entry := domain.ServiceAvailability{
		ServiceID:   item.ID,
		ServiceName: item.Name,
		Overlapping: usagesToRefs(usages),
	}

	if !item.Active {
		entry.Available = false
		entry.Reason = domain.ReasonInactive
		entry.QuantityTotal = quantityTotal(item)
		return entry
	}

	if item.AvailabilityType == domain.AvailabilityUnlimited {
		entry.Available = true
		entry.QuantityTotal = domain.UnlimitedQuantity
		entry.QuantityUsed = sumQuantities(usages)
		entry.QuantityAvailable = domain.UnlimitedQuantity
		return entry
	}

	used := sumQuantities(usages)
	left := item.Quantity - used

	entry.QuantityTotal = item.Quantity
	entry.QuantityUsed = used
	if left > 0 {
		entry.QuantityAvailable = left
	}
	entry.Available = left >= requestedQty
	if !entry.Available {
		entry.Reason = domain.ReasonFullyBooked
	}

	return entry
}

func quantityTotal(item domain.ServiceItem) int {
	if item.AvailabilityType == domain.AvailabilityUnlimited {
		return domain.UnlimitedQuantity
	}
	return item.Quantity
}

func sumQuantities(usages []domain.ReservationUsage) int {
	total := 0
	for _, usage := range usages {
		total += usage.Quantity
	}
	return total
}

func usagesToRefs(usages []domain.ReservationUsage) []domain.BookingRef {
	refs := make([]domain.BookingRef, 0, len(usages))
	for _, usage := range usages {
		refs = append(refs, domain.BookingRef{
			BookingID: usage.BookingID,
			Title:     usage.BookingTitle,
			Status:    usage.BookingStatus,
			StartTime: usage.StartTime,
			EndTime:   usage.EndTime,
			Quantity:  usage.Quantity,
		})
	}
	return refs
}

func groupUsagesByService(usages []domain.ReservationUsage) map[int64][]domain.ReservationUsage {
	grouped := make(map[int64][]domain.ReservationUsage)
	for _, usage := range usages {
		grouped[usage.ServiceID] = append(grouped[usage.ServiceID], usage)
	}
	return grouped
}

func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
