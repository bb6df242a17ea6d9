package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

const tenantID = int64(42)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeCalculator struct {
	entries []domain.ServiceAvailability
	err     error

	lastIDs     []int64
	lastWindow  domain.TimeWindow
	lastExclude *int64
	calls       int
}

func (f *fakeCalculator) CheckByIDs(_ context.Context, _ int64, serviceIDs []int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.ServiceAvailability, error) {
	f.calls++
	f.lastIDs = serviceIDs
	f.lastWindow = window
	f.lastExclude = excludeBookingID
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fixture struct {
	calc *fakeCalculator
	uc   *UseCase
}

func newFixture() *fixture {
	f := &fixture{calc: &fakeCalculator{}}
	f.uc = NewUseCase(f.calc, stubLogger{})
	return f
}

func checkRequest(ids []int64, start, end time.Time) *Request {
	return &Request{
		TenantID:   tenantID,
		ServiceIDs: ids,
		StartTime:  start,
		EndTime:    end,
	}
}

func TestUseCase_Execute_AllAvailable(t *testing.T) {
	f := newFixture()
	f.calc.entries = []domain.ServiceAvailability{
		{ServiceID: 1, ServiceName: "Room", Available: true, QuantityTotal: domain.UnlimitedQuantity, QuantityAvailable: domain.UnlimitedQuantity, Overlapping: []domain.BookingRef{}},
		{ServiceID: 2, ServiceName: "Projector", Available: true, QuantityTotal: 5, QuantityUsed: 1, QuantityAvailable: 4, Overlapping: []domain.BookingRef{}},
	}

	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	resp, err := f.uc.Execute(context.Background(), checkRequest([]int64{1, 2}, start, end))
	require.NoError(t, err)

	assert.True(t, resp.AllAvailable)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, "Room", resp.Services[0].ServiceName)
	assert.Equal(t, domain.UnlimitedQuantity, resp.Services[0].QuantityTotal)
	assert.Equal(t, 4, resp.Services[1].QuantityAvailable)

	assert.Equal(t, 1, f.calc.calls)
	assert.Equal(t, []int64{1, 2}, f.calc.lastIDs)
	assert.Equal(t, domain.TimeWindow{Start: start, End: end}, f.calc.lastWindow)
	assert.Nil(t, f.calc.lastExclude)
}

func TestUseCase_Execute_UnavailableServiceDropsAllAvailable(t *testing.T) {
	f := newFixture()
	conflict := domain.BookingRef{
		BookingID: 77,
		Title:     "Corporate offsite",
		Status:    domain.StatusConfirmed,
		StartTime: time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 7, 10, 13, 0, 0, 0, time.UTC),
		Quantity:  5,
	}
	f.calc.entries = []domain.ServiceAvailability{
		{ServiceID: 1, ServiceName: "Room", Available: true, Overlapping: []domain.BookingRef{}},
		{ServiceID: 2, ServiceName: "Projector", Available: false, Reason: domain.ReasonFullyBooked, QuantityTotal: 5, QuantityUsed: 5, QuantityAvailable: 0, Overlapping: []domain.BookingRef{conflict}},
	}

	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), checkRequest([]int64{1, 2}, start, start.Add(2*time.Hour)))
	require.NoError(t, err)

	assert.False(t, resp.AllAvailable)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, domain.ReasonFullyBooked, resp.Services[1].Reason)
	require.Len(t, resp.Services[1].OverlappingBookings, 1)
	assert.Equal(t, int64(77), resp.Services[1].OverlappingBookings[0].BookingID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Services[1].OverlappingBookings[0].Status)
	assert.Equal(t, 5, resp.Services[1].OverlappingBookings[0].Quantity)
}

func TestUseCase_Execute_PassesExcludeBookingID(t *testing.T) {
	f := newFixture()

	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	req := checkRequest([]int64{1}, start, start.Add(time.Hour))
	req.ExcludeBookingID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, f.calc.lastExclude)
	assert.Equal(t, int64(55), *f.calc.lastExclude)
}

func TestUseCase_Execute_CalculatorError(t *testing.T) {
	f := newFixture()
	f.calc.err = errors.New("db down")

	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), checkRequest([]int64{1}, start, start.Add(time.Hour)))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "tenant обязателен",
			req: &Request{
				ServiceIDs: []int64{1},
				StartTime:  start,
				EndTime:    start.Add(time.Hour),
			},
		},
		{
			name: "пустой список услуг",
			req:  checkRequest(nil, start, start.Add(time.Hour)),
		},
		{
			name: "нулевой id услуги",
			req:  checkRequest([]int64{1, 0}, start, start.Add(time.Hour)),
		},
		{
			name: "окно нулевой длины",
			req:  checkRequest([]int64{1}, start, start),
		},
		{
			name: "некорректный excludeBookingId",
			req: func() *Request {
				r := checkRequest([]int64{1}, start, start.Add(time.Hour))
				r.ExcludeBookingID = ptr.Ptr(int64(0))
				return r
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.calc.calls)
		})
	}
}
