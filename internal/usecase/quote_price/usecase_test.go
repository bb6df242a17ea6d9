package quote_price

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/service"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

const tenantID = int64(42)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeServiceRepo struct {
	item *domain.ServiceItem
	err  error

	byIDCalls   []int64
	byNameCalls []string
}

func (f *fakeServiceRepo) GetActiveByID(_ context.Context, _ int64, id int64) (*domain.ServiceItem, error) {
	f.byIDCalls = append(f.byIDCalls, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

func (f *fakeServiceRepo) FindActiveByName(_ context.Context, _ int64, name string) (*domain.ServiceItem, error) {
	f.byNameCalls = append(f.byNameCalls, name)
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

type fixture struct {
	repo *fakeServiceRepo
	uc   *UseCase
}

func newFixture() *fixture {
	f := &fixture{repo: &fakeServiceRepo{}}
	f.uc = NewUseCase(f.repo, stubLogger{})
	return f
}

func hourlyItem() *domain.ServiceItem {
	return &domain.ServiceItem{
		ID:               10,
		TenantID:         tenantID,
		Name:             "Projector",
		AvailabilityType: domain.AvailabilityLimited,
		Quantity:         5,
		Active:           true,
		BasePrice:        500,
		PricePerHour:     ptr.Ptr(100.0),
		PricePerDay:      ptr.Ptr(600.0),
	}
}

func quoteRequest(svc domain.ServiceRef, start, end time.Time) *Request {
	return &Request{
		TenantID:  tenantID,
		Service:   svc,
		StartTime: start,
		EndTime:   end,
	}
}

func TestUseCase_Execute_QuoteByID(t *testing.T) {
	f := newFixture()
	f.repo.item = hourlyItem()

	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), quoteRequest(
		domain.ServiceRef{ID: ptr.Ptr(int64(10)), Quantity: 2},
		start, start.Add(4*time.Hour),
	))
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, f.repo.byIDCalls)
	assert.Empty(t, f.repo.byNameCalls)

	assert.Equal(t, int64(10), resp.ServiceID)
	assert.Equal(t, "Projector", resp.ServiceName)
	assert.Equal(t, 4.0, resp.DurationHours)
	assert.Equal(t, 2, resp.Quantity)
	// 4 часа попадают в дневную ставку
	assert.Equal(t, 600.0, resp.UnitPrice)
	assert.Equal(t, 1200.0, resp.TotalPrice)
	require.NotNil(t, resp.PricePerHour)
	assert.Equal(t, 100.0, *resp.PricePerHour)
	assert.Nil(t, resp.PricePerWeek)
}

func TestUseCase_Execute_QuoteByName(t *testing.T) {
	f := newFixture()
	f.repo.item = hourlyItem()

	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), quoteRequest(
		domain.ServiceRef{Name: ptr.Ptr("projector")},
		start, start.Add(1*time.Hour),
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"projector"}, f.repo.byNameCalls)
	assert.Empty(t, f.repo.byIDCalls)

	// Количество по умолчанию 1, час по почасовой ставке
	assert.Equal(t, 1, resp.Quantity)
	assert.Equal(t, 100.0, resp.UnitPrice)
	assert.Equal(t, 100.0, resp.TotalPrice)
}

func TestUseCase_Execute_BasePriceFallback(t *testing.T) {
	f := newFixture()
	item := hourlyItem()
	item.PricePerHour = nil
	item.PricePerDay = nil
	f.repo.item = item

	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), quoteRequest(
		domain.ServiceRef{ID: ptr.Ptr(int64(10))},
		start, start.Add(3*time.Hour),
	))
	require.NoError(t, err)

	assert.Equal(t, 500.0, resp.UnitPrice)
	assert.Equal(t, 500.0, resp.TotalPrice)
}

func TestUseCase_Execute_ServiceNotFound(t *testing.T) {
	f := newFixture()
	f.repo.err = serviceRepo.ErrServiceNotFound

	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), quoteRequest(
		domain.ServiceRef{ID: ptr.Ptr(int64(99))},
		start, start.Add(time.Hour),
	))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("db down")

	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), quoteRequest(
		domain.ServiceRef{ID: ptr.Ptr(int64(10))},
		start, start.Add(time.Hour),
	))
	require.Error(t, err)
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
				Service:   domain.ServiceRef{ID: ptr.Ptr(int64(10))},
				StartTime: start,
				EndTime:   start.Add(time.Hour),
			},
		},
		{
			name: "услуга без id и имени",
			req:  quoteRequest(domain.ServiceRef{}, start, start.Add(time.Hour)),
		},
		{
			name: "отрицательный id услуги",
			req:  quoteRequest(domain.ServiceRef{ID: ptr.Ptr(int64(-1))}, start, start.Add(time.Hour)),
		},
		{
			name: "отрицательное количество",
			req:  quoteRequest(domain.ServiceRef{ID: ptr.Ptr(int64(10)), Quantity: -1}, start, start.Add(time.Hour)),
		},
		{
			name: "окно нулевой длины",
			req:  quoteRequest(domain.ServiceRef{ID: ptr.Ptr(int64(10))}, start, start),
		},
		{
			name: "конец раньше начала",
			req:  quoteRequest(domain.ServiceRef{ID: ptr.Ptr(int64(10))}, start, start.Add(-time.Hour)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.repo.byIDCalls)
			assert.Empty(t, f.repo.byNameCalls)
		})
	}
}
