package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

const tenantID = int64(42)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type countCall struct {
	from   time.Time
	to     time.Time
	status *domain.BookingStatus
	source *domain.BookingSource
}

type fakeBookingRepo struct {
	total     int64
	confirmed int64
	pending   int64
	ai        int64
	countErr  error

	customers    int64
	customersErr error

	recent    []*domain.Booking
	recentErr error

	countCalls     []countCall
	customersSince time.Time
	recentFrom     time.Time
	recentTo       time.Time
	recentLimit    int
}

func (f *fakeBookingRepo) CountContainedInPeriod(_ context.Context, _ int64, from, to time.Time, status *domain.BookingStatus, source *domain.BookingSource) (int64, error) {
	f.countCalls = append(f.countCalls, countCall{from: from, to: to, status: status, source: source})
	if f.countErr != nil {
		return 0, f.countErr
	}
	switch {
	case source != nil:
		return f.ai, nil
	case status != nil && *status == domain.StatusConfirmed:
		return f.confirmed, nil
	case status != nil && *status == domain.StatusPending:
		return f.pending, nil
	default:
		return f.total, nil
	}
}

func (f *fakeBookingRepo) CountDistinctCustomersSince(_ context.Context, _ int64, since time.Time) (int64, error) {
	f.customersSince = since
	if f.customersErr != nil {
		return 0, f.customersErr
	}
	return f.customers, nil
}

func (f *fakeBookingRepo) ListRecentBySource(_ context.Context, _ int64, _ domain.BookingSource, from, to time.Time, limit int) ([]*domain.Booking, error) {
	f.recentFrom = from
	f.recentTo = to
	f.recentLimit = limit
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return f.recent, nil
}

type fakeReservationRepo struct {
	byBooking map[int64][]domain.Reservation
	err       error
	calledIDs []int64
}

func (f *fakeReservationRepo) GetByBookingIDs(_ context.Context, bookingIDs []int64) (map[int64][]domain.Reservation, error) {
	f.calledIDs = bookingIDs
	if f.err != nil {
		return nil, f.err
	}
	result := make(map[int64][]domain.Reservation, len(bookingIDs))
	for _, id := range bookingIDs {
		result[id] = f.byBooking[id]
	}
	return result, nil
}

type fakeConflictRepo struct {
	unresolved int64
	err        error
	since      time.Time
}

func (f *fakeConflictRepo) CountUnresolvedSince(_ context.Context, _ int64, since time.Time) (int64, error) {
	f.since = since
	if f.err != nil {
		return 0, f.err
	}
	return f.unresolved, nil
}

type fakeServiceRepo struct {
	active int64
	err    error
}

func (f *fakeServiceRepo) CountActiveByTenant(_ context.Context, _ int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.active, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fixture struct {
	bookingRepo     *fakeBookingRepo
	reservationRepo *fakeReservationRepo
	conflictRepo    *fakeConflictRepo
	serviceRepo     *fakeServiceRepo
	svc             *Service
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookingRepo:     &fakeBookingRepo{},
		reservationRepo: &fakeReservationRepo{byBooking: map[int64][]domain.Reservation{}},
		conflictRepo:    &fakeConflictRepo{},
		serviceRepo:     &fakeServiceRepo{},
	}
	f.svc = NewService(f.bookingRepo, f.reservationRepo, f.conflictRepo, f.serviceRepo, fixedClock{now: now}, stubLogger{})
	return f
}

func aiBooking(id int64) *domain.Booking {
	sessionID := uuid.New()
	return &domain.Booking{
		ID:          id,
		TenantID:    tenantID,
		CustomerID:  7,
		Title:       "Deep cleaning",
		StartTime:   time.Date(2025, 7, 20, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC),
		Status:      domain.StatusConfirmed,
		Source:      domain.SourceAIAssistant,
		AISessionID: &sessionID,
	}
}

func TestService_Dashboard_CollectsMonthlyCounters(t *testing.T) {
	f := newFixture(time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC))
	f.bookingRepo.total = 48
	f.bookingRepo.confirmed = 30
	f.bookingRepo.pending = 5
	f.bookingRepo.ai = 12
	f.bookingRepo.customers = 19
	f.bookingRepo.recent = []*domain.Booking{aiBooking(101), aiBooking(102)}
	f.conflictRepo.unresolved = 3
	f.serviceRepo.active = 7
	f.reservationRepo.byBooking[101] = []domain.Reservation{
		{ID: 1, BookingID: 101, ServiceID: 10, ServiceName: "Conference Room A", Quantity: 1, Status: domain.ReservationReserved, UnitPrice: 200, TotalPrice: 200},
	}

	resp, err := f.svc.Dashboard(context.Background(), tenantID)
	require.NoError(t, err)

	assert.Equal(t, int64(48), resp.TotalBookings)
	assert.Equal(t, int64(30), resp.ConfirmedBookings)
	assert.Equal(t, int64(5), resp.PendingBookings)
	assert.Equal(t, int64(12), resp.AICreatedBookings)
	assert.Equal(t, int64(3), resp.Conflicts)
	assert.Equal(t, int64(7), resp.ActiveServices)
	assert.Equal(t, int64(19), resp.ActiveCustomers)

	require.Len(t, resp.RecentAIBookings, 2)
	assert.Equal(t, int64(101), resp.RecentAIBookings[0].ID)
	require.Len(t, resp.RecentAIBookings[0].Reservations, 1)
	assert.Equal(t, "Conference Room A", resp.RecentAIBookings[0].Reservations[0].ServiceName)
	assert.NotNil(t, resp.RecentAIBookings[0].AISessionID)
	assert.Empty(t, resp.RecentAIBookings[1].Reservations)

	assert.Equal(t, []int64{101, 102}, f.reservationRepo.calledIDs)
}

func TestService_Dashboard_MonthWindow(t *testing.T) {
	f := newFixture(time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC))

	_, err := f.svc.Dashboard(context.Background(), tenantID)
	require.NoError(t, err)

	monthStart := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	// Четыре счетчика: всего, confirmed, pending, от AI
	require.Len(t, f.bookingRepo.countCalls, 4)
	for _, call := range f.bookingRepo.countCalls {
		assert.Equal(t, monthStart, call.from)
		assert.Equal(t, monthEnd, call.to)
	}
	assert.Nil(t, f.bookingRepo.countCalls[0].status)
	assert.Nil(t, f.bookingRepo.countCalls[0].source)
	require.NotNil(t, f.bookingRepo.countCalls[1].status)
	assert.Equal(t, domain.StatusConfirmed, *f.bookingRepo.countCalls[1].status)
	require.NotNil(t, f.bookingRepo.countCalls[2].status)
	assert.Equal(t, domain.StatusPending, *f.bookingRepo.countCalls[2].status)
	require.NotNil(t, f.bookingRepo.countCalls[3].source)
	assert.Equal(t, domain.SourceAIAssistant, *f.bookingRepo.countCalls[3].source)

	assert.Equal(t, monthStart, f.conflictRepo.since)
	assert.Equal(t, monthStart, f.bookingRepo.customersSince)
	assert.Equal(t, monthStart, f.bookingRepo.recentFrom)
	assert.Equal(t, monthEnd, f.bookingRepo.recentTo)
	assert.Equal(t, recentAIBookingsLimit, f.bookingRepo.recentLimit)
}

func TestService_Dashboard_MonthWindowCrossesYearEnd(t *testing.T) {
	f := newFixture(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC))

	_, err := f.svc.Dashboard(context.Background(), tenantID)
	require.NoError(t, err)

	require.NotEmpty(t, f.bookingRepo.countCalls)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), f.bookingRepo.countCalls[0].from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), f.bookingRepo.countCalls[0].to)
}

func TestService_Dashboard_NoRecentAIBookings(t *testing.T) {
	f := newFixture(time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC))
	// Репозиторий резерваций не должен вызываться при пустом списке
	f.reservationRepo.err = errors.New("must not be called")

	resp, err := f.svc.Dashboard(context.Background(), tenantID)
	require.NoError(t, err)

	assert.NotNil(t, resp.RecentAIBookings)
	assert.Empty(t, resp.RecentAIBookings)
	assert.Nil(t, f.reservationRepo.calledIDs)
}

func TestService_Dashboard_CountErrorWrapped(t *testing.T) {
	f := newFixture(time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC))
	f.bookingRepo.countErr = errors.New("db down")

	resp, err := f.svc.Dashboard(context.Background(), tenantID)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Dashboard_ConflictCountError(t *testing.T) {
	f := newFixture(time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC))
	f.conflictRepo.err = errors.New("db down")

	_, err := f.svc.Dashboard(context.Background(), tenantID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Dashboard_RecentListError(t *testing.T) {
	f := newFixture(time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC))
	f.bookingRepo.recentErr = errors.New("db down")

	_, err := f.svc.Dashboard(context.Background(), tenantID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Dashboard_ReservationLoadError(t *testing.T) {
	f := newFixture(time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC))
	f.bookingRepo.recent = []*domain.Booking{aiBooking(101)}
	f.reservationRepo.err = errors.New("db down")

	_, err := f.svc.Dashboard(context.Background(), tenantID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}
