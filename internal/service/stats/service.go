package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	bookingmodels "github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CalendarService/internal/service/stats/models"
)

// Сколько недавних AI бронирований попадает в сводку
const recentAIBookingsLimit = 5

// Service собирает сводку дашборда за текущий календарный месяц
type Service struct {
	bookingRepo     BookingRepository
	reservationRepo ReservationRepository
	conflictRepo    ConflictRepository
	serviceRepo     ServiceRepository
	timeProvider    RealTimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(
	bookingRepo BookingRepository,
	reservationRepo ReservationRepository,
	conflictRepo ConflictRepository,
	serviceRepo ServiceRepository,
	timeProvider RealTimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		reservationRepo: reservationRepo,
		conflictRepo:    conflictRepo,
		serviceRepo:     serviceRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Dashboard собирает статистику тенанта за текущий месяц: счетчики
// бронирований, неразрешенные конфликты, активные услуги и клиенты,
// последние бронирования от AI ассистента
func (s *Service) Dashboard(ctx context.Context, tenantID int64) (*models.DashboardStatsResponse, error) {
	s.logger.Info("Dashboard: collecting stats for tenant=%d", tenantID)

	now := s.timeProvider.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	resp := &models.DashboardStatsResponse{}

	total, err := s.bookingRepo.CountContainedInPeriod(ctx, tenantID, monthStart, monthEnd, nil, nil)
	if err != nil {
		return nil, s.countError("total bookings", tenantID, err)
	}
	resp.TotalBookings = total

	confirmedStatus := domain.StatusConfirmed
	confirmed, err := s.bookingRepo.CountContainedInPeriod(ctx, tenantID, monthStart, monthEnd, &confirmedStatus, nil)
	if err != nil {
		return nil, s.countError("confirmed bookings", tenantID, err)
	}
	resp.ConfirmedBookings = confirmed

	pendingStatus := domain.StatusPending
	pending, err := s.bookingRepo.CountContainedInPeriod(ctx, tenantID, monthStart, monthEnd, &pendingStatus, nil)
	if err != nil {
		return nil, s.countError("pending bookings", tenantID, err)
	}
	resp.PendingBookings = pending

	aiSource := domain.SourceAIAssistant
	aiCreated, err := s.bookingRepo.CountContainedInPeriod(ctx, tenantID, monthStart, monthEnd, nil, &aiSource)
	if err != nil {
		return nil, s.countError("ai bookings", tenantID, err)
	}
	resp.AICreatedBookings = aiCreated

	conflicts, err := s.conflictRepo.CountUnresolvedSince(ctx, tenantID, monthStart)
	if err != nil {
		return nil, s.countError("unresolved conflicts", tenantID, err)
	}
	resp.Conflicts = conflicts

	activeServices, err := s.serviceRepo.CountActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, s.countError("active services", tenantID, err)
	}
	resp.ActiveServices = activeServices

	activeCustomers, err := s.bookingRepo.CountDistinctCustomersSince(ctx, tenantID, monthStart)
	if err != nil {
		return nil, s.countError("active customers", tenantID, err)
	}
	resp.ActiveCustomers = activeCustomers

	recent, err := s.recentAIBookings(ctx, tenantID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	resp.RecentAIBookings = recent

	s.logger.Info("Dashboard: collected stats for tenant=%d, %d bookings this month", tenantID, total)
	return resp, nil
}

// recentAIBookings получает последние бронирования от AI ассистента за месяц
// вместе с их резервациями
func (s *Service) recentAIBookings(ctx context.Context, tenantID int64, from, to time.Time) ([]bookingmodels.BookingResponse, error) {
	bookings, err := s.bookingRepo.ListRecentBySource(ctx, tenantID, domain.SourceAIAssistant, from, to, recentAIBookingsLimit)
	if err != nil {
		s.logger.Error("recentAIBookings: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Dashboard - recent ai bookings: %v", ErrInternal, err)
	}

	if len(bookings) > 0 {
		ids := make([]int64, 0, len(bookings))
		for _, booking := range bookings {
			ids = append(ids, booking.ID)
		}

		byBooking, err := s.reservationRepo.GetByBookingIDs(ctx, ids)
		if err != nil {
			s.logger.Error("recentAIBookings: failed to load reservations for tenant=%d: %v", tenantID, err)
			return nil, fmt.Errorf("%w: Dashboard - load reservations: %v", ErrInternal, err)
		}

		for _, booking := range bookings {
			booking.Reservations = byBooking[booking.ID]
		}
	}

	return bookingmodels.FromDomainBookingList(bookings).Bookings, nil
}

func (s *Service) countError(what string, tenantID int64, err error) error {
	s.logger.Error("Dashboard: failed to count %s for tenant=%d: %v", what, tenantID, err)
	return fmt.Errorf("%w: Dashboard - count %s: %v", ErrInternal, what, err)
}
