package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo     BookingRepository
	reservationRepo ReservationRepository
	notifier        Notifier
	timeProvider    RealTimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	reservationRepo ReservationRepository,
	notifier Notifier,
	timeProvider RealTimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		reservationRepo: reservationRepo,
		notifier:        notifier,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает бронирование тенанта вместе со строками резерваций
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for tenant=%d", id, tenantID)

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found for tenant=%d", id, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	reservations, err := s.reservationRepo.GetByBookingID(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to load reservations for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - load reservations: %v", ErrInternal, err)
	}
	booking.Reservations = reservations

	s.logger.Info("GetByID: successfully fetched booking id=%d with %d reservations", id, len(reservations))
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования тенанта с гибкой фильтрацией.
// Период (From, To) трактуется как пересечение с окном бронирования.
//
// Примеры использования:
// - Все активные бронирования: List(ctx, &GetBookingsRequest{TenantID: 42})
// - Бронирования клиента: указать CustomerID
// - Бронирования с конкретной услугой: указать ServiceID
// - Занятость за период: указать From и To
// - Включая отмененные и завершенные: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching bookings for tenant=%d", req.TenantID)
	if req.CustomerID != nil {
		logMsg += fmt.Sprintf(", customer=%d", *req.CustomerID)
	}
	if req.ServiceID != nil {
		logMsg += fmt.Sprintf(", service=%d", *req.ServiceID)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if err := s.attachReservations(ctx, bookings); err != nil {
		return nil, err
	}

	s.logger.Info("List: successfully fetched %d bookings for tenant=%d", len(bookings), req.TenantID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Допустимые переходы задает машина состояний бронирования, произвольные
// скачки (completed -> pending) отклоняются.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s for tenant=%d",
		req.BookingID, req.Status, req.TenantID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.TenantID, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found for tenant=%d", req.BookingID, req.TenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s rejected for booking id=%d",
			booking.Status, newStatus, req.BookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, req.TenantID, req.BookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus
	s.notifier.BookingStatusChanged(ctx, booking)

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", req.BookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование и дописывает строку аудита в заметки.
// Резервации остаются привязанными к бронированию, но учитываться в
// занятости перестают вместе со сменой статуса.
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d for tenant=%d by=%s",
		req.BookingID, req.TenantID, req.CancelledBy)

	booking, err := s.bookingRepo.GetByID(ctx, req.TenantID, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found for tenant=%d", req.BookingID, req.TenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", req.BookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	booking.AppendNote(s.auditNote(req))

	if err := s.bookingRepo.Cancel(ctx, req.TenantID, req.BookingID, booking.Notes); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	s.notifier.BookingCancelled(ctx, booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", req.BookingID)
	return models.FromDomainBooking(booking), nil
}

// auditNote собирает строку аудита отмены
func (s *Service) auditNote(req *models.CancelBookingRequest) string {
	now := s.timeProvider.Now().Format(time.RFC3339)

	if req.CancelledBy == string(domain.SourceAIAssistant) {
		return fmt.Sprintf("Cancelled by AI on %s", now)
	}

	note := fmt.Sprintf("Cancelled on %s", now)
	if req.Reason != "" {
		note += ": " + req.Reason
	}
	return note
}

// attachReservations догружает резервации для набора бронирований одним запросом
func (s *Service) attachReservations(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(bookings))
	for _, booking := range bookings {
		ids = append(ids, booking.ID)
	}

	byBooking, err := s.reservationRepo.GetByBookingIDs(ctx, ids)
	if err != nil {
		s.logger.Error("attachReservations: failed to load reservations for %d bookings: %v", len(ids), err)
		return fmt.Errorf("%w: attachReservations - load reservations: %v", ErrInternal, err)
	}

	for _, booking := range bookings {
		booking.Reservations = byBooking[booking.ID]
	}

	return nil
}
