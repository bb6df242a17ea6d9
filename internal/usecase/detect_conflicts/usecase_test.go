package detect_conflicts

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
	byID   map[int64]*domain.ServiceItem
	byName map[string]*domain.ServiceItem
	err    error
}

func (f *fakeServiceRepo) GetActiveByID(_ context.Context, _ int64, id int64) (*domain.ServiceItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.byID[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return item, nil
}

func (f *fakeServiceRepo) FindActiveByName(_ context.Context, _ int64, name string) (*domain.ServiceItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.byName[name]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return item, nil
}

type fakeDetector struct {
	records []domain.ConflictRecord
	err     error

	lastWindow    domain.TimeWindow
	lastRequested []domain.RequestedService
	lastExclude   *int64
	calls         int
}

func (f *fakeDetector) Detect(_ context.Context, _ int64, window domain.TimeWindow, requested []domain.RequestedService, excludeBookingID *int64) ([]domain.ConflictRecord, error) {
	f.calls++
	f.lastWindow = window
	f.lastRequested = requested
	f.lastExclude = excludeBookingID
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fixture struct {
	repo     *fakeServiceRepo
	detector *fakeDetector
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo: &fakeServiceRepo{
			byID:   map[int64]*domain.ServiceItem{},
			byName: map[string]*domain.ServiceItem{},
		},
		detector: &fakeDetector{},
	}
	f.uc = NewUseCase(f.repo, f.detector, stubLogger{})
	return f
}

func catalogItem(id int64, name string) *domain.ServiceItem {
	return &domain.ServiceItem{
		ID:               id,
		TenantID:         tenantID,
		Name:             name,
		AvailabilityType: domain.AvailabilityLimited,
		Quantity:         3,
		Active:           true,
	}
}

func detectRequest(refs []domain.ServiceRef) *Request {
	start := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	return &Request{
		TenantID:  tenantID,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Services:  refs,
	}
}

func TestUseCase_Execute_ReportsConflicts(t *testing.T) {
	f := newFixture()
	f.repo.byID[1] = catalogItem(1, "Room")
	f.repo.byName["projector"] = catalogItem(2, "Projector")
	f.detector.records = []domain.ConflictRecord{
		{
			Type:                 domain.ConflictServiceOverlap,
			Severity:             domain.SeverityHigh,
			ServiceID:            ptr.Ptr(int64(2)),
			ConflictingBookingID: ptr.Ptr(int64(77)),
			Description:          "Projector is fully booked",
			SuggestedSlots: []domain.SuggestedSlot{
				{
					Start: time.Date(2025, 7, 10, 13, 0, 0, 0, time.UTC),
					End:   time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC),
				},
			},
		},
	}

	resp, err := f.uc.Execute(context.Background(), detectRequest([]domain.ServiceRef{
		{ID: ptr.Ptr(int64(1))},
		{Name: ptr.Ptr("projector"), Quantity: 2},
	}))
	require.NoError(t, err)

	assert.True(t, resp.HasConflicts)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, string(domain.ConflictServiceOverlap), resp.Conflicts[0].Type)
	assert.Equal(t, string(domain.SeverityHigh), resp.Conflicts[0].Severity)
	require.NotNil(t, resp.Conflicts[0].ConflictingBookingID)
	assert.Equal(t, int64(77), *resp.Conflicts[0].ConflictingBookingID)
	require.Len(t, resp.Conflicts[0].SuggestedSlots, 1)

	require.Len(t, resp.CheckedServices, 2)
	assert.Equal(t, CheckedService{ID: 1, Name: "Room", Quantity: 1}, resp.CheckedServices[0])
	assert.Equal(t, CheckedService{ID: 2, Name: "Projector", Quantity: 2}, resp.CheckedServices[1])
	assert.Empty(t, resp.DroppedServices)

	require.Len(t, f.detector.lastRequested, 2)
	assert.Equal(t, "Room", f.detector.lastRequested[0].Service.Name)
	assert.Equal(t, 2, f.detector.lastRequested[1].Quantity)
}

func TestUseCase_Execute_NoConflicts(t *testing.T) {
	f := newFixture()
	f.repo.byID[1] = catalogItem(1, "Room")

	resp, err := f.uc.Execute(context.Background(), detectRequest([]domain.ServiceRef{
		{ID: ptr.Ptr(int64(1))},
	}))
	require.NoError(t, err)

	assert.False(t, resp.HasConflicts)
	assert.NotNil(t, resp.Conflicts)
	assert.Empty(t, resp.Conflicts)
}

func TestUseCase_Execute_MergesDuplicateRefs(t *testing.T) {
	f := newFixture()
	f.repo.byID[1] = catalogItem(1, "Room")
	f.repo.byName["room"] = catalogItem(1, "Room")

	resp, err := f.uc.Execute(context.Background(), detectRequest([]domain.ServiceRef{
		{ID: ptr.Ptr(int64(1)), Quantity: 2},
		{Name: ptr.Ptr("room"), Quantity: 1},
	}))
	require.NoError(t, err)

	// Повторная ссылка на ту же услугу складывает количество
	require.Len(t, resp.CheckedServices, 1)
	assert.Equal(t, 3, resp.CheckedServices[0].Quantity)
	require.Len(t, f.detector.lastRequested, 1)
	assert.Equal(t, 3, f.detector.lastRequested[0].Quantity)
}

func TestUseCase_Execute_DropsUnknownServices(t *testing.T) {
	f := newFixture()
	f.repo.byID[1] = catalogItem(1, "Room")

	resp, err := f.uc.Execute(context.Background(), detectRequest([]domain.ServiceRef{
		{ID: ptr.Ptr(int64(1))},
		{ID: ptr.Ptr(int64(99))},
		{Name: ptr.Ptr("ghost")},
	}))
	require.NoError(t, err)

	require.Len(t, resp.CheckedServices, 1)
	assert.Equal(t, []string{"#99", "ghost"}, resp.DroppedServices)
	assert.Equal(t, 1, f.detector.calls)
}

func TestUseCase_Execute_AllServicesUnknown(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), detectRequest([]domain.ServiceRef{
		{ID: ptr.Ptr(int64(99))},
	}))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNoValidServices)
	assert.Zero(t, f.detector.calls)
}

func TestUseCase_Execute_PassesExcludeBookingID(t *testing.T) {
	f := newFixture()
	f.repo.byID[1] = catalogItem(1, "Room")

	req := detectRequest([]domain.ServiceRef{{ID: ptr.Ptr(int64(1))}})
	req.ExcludeBookingID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, f.detector.lastExclude)
	assert.Equal(t, int64(55), *f.detector.lastExclude)
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), detectRequest([]domain.ServiceRef{
		{ID: ptr.Ptr(int64(1))},
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.detector.calls)
}

func TestUseCase_Execute_DetectorError(t *testing.T) {
	f := newFixture()
	f.repo.byID[1] = catalogItem(1, "Room")
	f.detector.err = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), detectRequest([]domain.ServiceRef{
		{ID: ptr.Ptr(int64(1))},
	}))
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
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Services:  []domain.ServiceRef{{ID: ptr.Ptr(int64(1))}},
			},
		},
		{
			name: "окно нулевой длины",
			req: &Request{
				TenantID:  tenantID,
				StartTime: start,
				EndTime:   start,
				Services:  []domain.ServiceRef{{ID: ptr.Ptr(int64(1))}},
			},
		},
		{
			name: "пустой список услуг",
			req: &Request{
				TenantID:  tenantID,
				StartTime: start,
				EndTime:   start.Add(time.Hour),
			},
		},
		{
			name: "услуга без id и имени",
			req: &Request{
				TenantID:  tenantID,
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Services:  []domain.ServiceRef{{}},
			},
		},
		{
			name: "отрицательное количество",
			req: &Request{
				TenantID:  tenantID,
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Services:  []domain.ServiceRef{{ID: ptr.Ptr(int64(1)), Quantity: -1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.detector.calls)
		})
	}
}
