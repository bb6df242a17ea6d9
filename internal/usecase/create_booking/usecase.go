package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	customerRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/customer"
	serviceRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

// UseCase use case для создания бронирования с проверкой конфликтов
type UseCase struct {
	bookingRepo     BookingRepository
	reservationRepo ReservationRepository
	conflictRepo    ConflictRepository
	customerRepo    CustomerRepository
	serviceRepo     ServiceRepository
	settingsRepo    SettingsRepository
	detector        ConflictDetector
	txManager       TransactionManager
	notifier        Notifier
	config          Config
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	reservationRepo ReservationRepository,
	conflictRepo ConflictRepository,
	customerRepo CustomerRepository,
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	detector ConflictDetector,
	txManager TransactionManager,
	notifier Notifier,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		reservationRepo: reservationRepo,
		conflictRepo:    conflictRepo,
		customerRepo:    customerRepo,
		serviceRepo:     serviceRepo,
		settingsRepo:    settingsRepo,
		detector:        detector,
		txManager:       txManager,
		notifier:        notifier,
		config:          config,
		logger:          logger,
	}
}

// resolvedService услуга из каталога с запрошенным количеством
type resolvedService struct {
	item     domain.ServiceItem
	quantity int
}

// Execute выполняет use case создания бронирования.
// Обнаруженные конфликты не блокируют создание: бронирование сохраняется
// со статусом pending, а конфликты записываются в журнал. Проверка
// занятости и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, title=%q, window=[%s, %s), services=%d",
		req.TenantID, req.Title, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), len(req.Services))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}

	window := domain.TimeWindow{Start: req.StartTime, End: req.EndTime}

	// 2. Предварительно разрешаем услуги из каталога. Неразрешенные позиции
	// отбрасываются и попадают в ответ, пустой итог считается ошибкой запроса.
	resolved, dropped, err := uc.resolveServices(ctx, req.TenantID, req.Services)
	if err != nil {
		return nil, err
	}

	if len(resolved) == 0 {
		uc.logger.Warn("CreateBooking: no valid services for tenant=%d, dropped=%v", req.TenantID, dropped)
		return nil, ErrNoValidServices
	}

	// 3. Разрешаем клиента: по ID, затем по email, иначе создаем нового
	customer, err := uc.resolveCustomer(ctx, req.TenantID, req.Customer)
	if err != nil {
		return nil, err
	}

	var (
		booking       *domain.Booking
		conflicts     []domain.ConflictRecord
		lockDropped   []string
		autoConfirmed bool
	)

	// 4. Проверка занятости и запись в одной сериализуемой транзакции.
	// Тело может быть выполнено повторно, поэтому внешнее состояние
	// только присваивается, без накопления.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts = nil
		autoConfirmed = false

		// 4.1. Перечитываем услуги под блокировкой строк в порядке
		// возрастания ID
		requested, droppedInTx, err := uc.lockServices(txCtx, req.TenantID, resolved)
		if err != nil {
			return err
		}
		lockDropped = droppedInTx

		if len(requested) == 0 {
			uc.logger.Warn("CreateBooking: all services became unavailable for tenant=%d", req.TenantID)
			return ErrNoValidServices
		}

		// 4.2. Детектируем конфликты по заблокированному состоянию каталога
		detected, err := uc.detector.Detect(txCtx, req.TenantID, window, requested, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict detection failed: %v", err)
			return fmt.Errorf("%w: failed to detect conflicts: %v", ErrInternal, err)
		}

		// 4.3. Политика автоподтверждения по настройкам тенанта
		settings, err := uc.loadSettings(txCtx, req.TenantID)
		if err != nil {
			return err
		}

		status := domain.StatusPending
		if uc.shouldAutoConfirm(req, source, settings, detected) {
			status = domain.StatusConfirmed
			autoConfirmed = true
		}

		// 4.4. Расчет стоимости каждой резервации по тарифной сетке услуги
		hours := window.Hours()
		reservations := make([]domain.Reservation, 0, len(requested))
		totalPrice := 0.0

		for _, rs := range requested {
			unitPrice := rs.Service.PriceForDuration(hours)
			linePrice := unitPrice * float64(rs.Quantity)

			reservations = append(reservations, domain.Reservation{
				ServiceID:   rs.Service.ID,
				Quantity:    rs.Quantity,
				Status:      domain.ReservationReserved,
				UnitPrice:   unitPrice,
				TotalPrice:  linePrice,
				ServiceName: rs.Service.Name,
			})
			totalPrice += linePrice
		}

		// 4.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			TenantID:     req.TenantID,
			CustomerID:   customer.ID,
			Title:        req.Title,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Status:       status,
			Source:       source,
			Notes:        req.Notes,
			TotalPrice:   totalPrice,
			AISessionID:  req.AISessionID,
			AIMessageID:  req.AIMessageID,
			AIConfidence: req.AIConfidence,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.6. Сохраняем резервации
		createdReservations, err := uc.reservationRepo.CreateBatch(txCtx, created.ID, reservations)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create reservations for booking=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to create reservations: %v", ErrInternal, err)
		}
		created.Reservations = createdReservations

		// 4.7. Записываем конфликты в журнал с привязкой к бронированию
		if len(detected) > 0 {
			for i := range detected {
				detected[i].BookingID = &created.ID
			}

			storedConflicts, err := uc.conflictRepo.CreateBatch(txCtx, detected)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to store conflicts for booking=%d: %v", created.ID, err)
				return fmt.Errorf("%w: failed to store conflicts: %v", ErrInternal, err)
			}
			conflicts = storedConflicts
		}

		booking = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure for tenant=%d after retry: %v", req.TenantID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	dropped = append(dropped, lockDropped...)

	uc.logger.Info("CreateBooking: created booking id=%d, status=%s, conflicts=%d, total=%.2f",
		booking.ID, booking.Status, len(conflicts), booking.TotalPrice)

	// 5. Событие после коммита: доставка не влияет на результат операции
	uc.notifier.BookingCreated(ctx, booking, conflicts)

	return buildResponse(booking, conflicts, dropped, autoConfirmed), nil
}

// resolveServices разрешает ссылки на услуги из запроса в записи каталога.
// Повторная ссылка на ту же услугу складывает количества.
func (uc *UseCase) resolveServices(ctx context.Context, tenantID int64, refs []domain.ServiceRef) ([]resolvedService, []string, error) {
	resolved := make([]resolvedService, 0, len(refs))
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
				uc.logger.Warn("CreateBooking: service %s not found for tenant=%d", serviceRefLabel(ref), tenantID)
				dropped = append(dropped, serviceRefLabel(ref))
				continue
			}
			uc.logger.Error("CreateBooking: failed to resolve service %s: %v", serviceRefLabel(ref), err)
			return nil, nil, fmt.Errorf("%w: failed to resolve service: %v", ErrInternal, err)
		}

		if idx, ok := byID[item.ID]; ok {
			resolved[idx].quantity += ref.RequestedQuantity()
			continue
		}

		byID[item.ID] = len(resolved)
		resolved = append(resolved, resolvedService{item: *item, quantity: ref.RequestedQuantity()})
	}

	return resolved, dropped, nil
}

// resolveCustomer находит или создает клиента по данным из запроса
func (uc *UseCase) resolveCustomer(ctx context.Context, tenantID int64, ref domain.CustomerRef) (*domain.Customer, error) {
	// Ссылка по ID строгая: несуществующий клиент считается ошибкой запроса
	if ref.ID != nil {
		customer, err := uc.customerRepo.GetByID(ctx, tenantID, *ref.ID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("CreateBooking: customer id=%d not found for tenant=%d", *ref.ID, tenantID)
				return nil, ErrCustomerNotFound
			}
			uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", *ref.ID, err)
			return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
		return customer, nil
	}

	// Поиск по email без учета регистра
	if ref.Email != "" {
		customer, err := uc.customerRepo.GetByEmail(ctx, tenantID, ref.Email)
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Error("CreateBooking: failed to find customer by email: %v", err)
			return nil, fmt.Errorf("%w: failed to find customer by email: %v", ErrInternal, err)
		}
	}

	customer, err := uc.customerRepo.Create(ctx, &domain.Customer{
		TenantID: tenantID,
		Name:     ref.Name,
		Email:    ref.Email,
		Phone:    ref.Phone,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create customer for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created customer id=%d for tenant=%d", customer.ID, tenantID)
	return customer, nil
}

// lockServices перечитывает ранее разрешенные услуги под блокировкой строк.
// Услуги, исчезнувшие или деактивированные между разрешением и блокировкой,
// отбрасываются.
func (uc *UseCase) lockServices(ctx context.Context, tenantID int64, resolved []resolvedService) ([]domain.RequestedService, []string, error) {
	ids := make([]int64, 0, len(resolved))
	for _, rs := range resolved {
		ids = append(ids, rs.item.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked, err := uc.serviceRepo.LockByIDs(ctx, tenantID, ids)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to lock services for tenant=%d: %v", tenantID, err)
		return nil, nil, fmt.Errorf("%w: failed to lock services: %v", ErrInternal, err)
	}

	lockedByID := make(map[int64]domain.ServiceItem, len(locked))
	for _, item := range locked {
		lockedByID[item.ID] = item
	}

	requested := make([]domain.RequestedService, 0, len(resolved))
	dropped := make([]string, 0)

	for _, rs := range resolved {
		item, ok := lockedByID[rs.item.ID]
		if !ok || !item.Active {
			dropped = append(dropped, rs.item.Name)
			continue
		}
		requested = append(requested, domain.RequestedService{Service: item, Quantity: rs.quantity})
	}

	return requested, dropped, nil
}

// loadSettings загружает настройки тенанта; отсутствие строки не ошибка
func (uc *UseCase) loadSettings(ctx context.Context, tenantID int64) (*domain.CalendarSettings, error) {
	settings, err := uc.settingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, nil
		}
		uc.logger.Error("CreateBooking: failed to load settings for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}
	return settings, nil
}

// shouldAutoConfirm решает, подтверждать ли бронирование автоматически.
// Без строки настроек автоподтверждение выключено. Нулевая уверенность
// трактуется как отсутствующая.
func (uc *UseCase) shouldAutoConfirm(req *Request, source domain.BookingSource, settings *domain.CalendarSettings, conflicts []domain.ConflictRecord) bool {
	if settings == nil || !settings.AIBookingAutoConfirm {
		return false
	}

	if uc.config.AutoConfirmAIOnly && source != domain.SourceAIAssistant {
		return false
	}

	if req.AIConfidence == nil || *req.AIConfidence == 0 {
		return false
	}

	if *req.AIConfidence < settings.AIConfidenceThreshold {
		return false
	}

	for _, c := range conflicts {
		if c.Severity.BlocksAutoConfirm() {
			return false
		}
	}

	return true
}

// buildResponse собирает ответ из созданного бронирования и журнала конфликтов
func buildResponse(booking *domain.Booking, conflicts []domain.ConflictRecord, dropped []string, autoConfirmed bool) *Response {
	reservations := make([]ReservationLine, 0, len(booking.Reservations))
	resolvedServices := make([]ResolvedService, 0, len(booking.Reservations))

	for _, res := range booking.Reservations {
		reservations = append(reservations, ReservationLine{
			ID:          res.ID,
			ServiceID:   res.ServiceID,
			ServiceName: res.ServiceName,
			Quantity:    res.Quantity,
			Status:      string(res.Status),
			UnitPrice:   res.UnitPrice,
			TotalPrice:  res.TotalPrice,
		})
		resolvedServices = append(resolvedServices, ResolvedService{
			ID:       res.ServiceID,
			Name:     res.ServiceName,
			Quantity: res.Quantity,
		})
	}

	conflictInfos := make([]ConflictInfo, 0, len(conflicts))
	for _, c := range conflicts {
		conflictInfos = append(conflictInfos, ConflictInfo{
			ID:                   c.ID,
			Type:                 string(c.Type),
			Severity:             string(c.Severity),
			ServiceID:            c.ServiceID,
			ConflictingBookingID: c.ConflictingBookingID,
			Description:          c.Description,
			SuggestedSlots:       c.SuggestedSlots,
		})
	}

	return &Response{
		ID:               booking.ID,
		TenantID:         booking.TenantID,
		CustomerID:       booking.CustomerID,
		Title:            booking.Title,
		StartTime:        booking.StartTime,
		EndTime:          booking.EndTime,
		Status:           string(booking.Status),
		Source:           string(booking.Source),
		Notes:            booking.Notes,
		TotalPrice:       booking.TotalPrice,
		AutoConfirmed:    autoConfirmed,
		Reservations:     reservations,
		ResolvedServices: resolvedServices,
		DroppedServices:  dropped,
		Conflicts:        conflictInfos,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}
}
