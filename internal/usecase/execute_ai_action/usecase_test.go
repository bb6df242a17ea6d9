package execute_ai_action

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/service"
	bookingsService "github.com/m04kA/SMC-CalendarService/internal/service/bookings"
	bookingmodels "github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeCreator struct {
	req  *create_booking.Request
	resp *create_booking.Response
	err  error
}

func (f *fakeCreator) Execute(_ context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeCanceller struct {
	req  *bookingmodels.CancelBookingRequest
	resp *bookingmodels.BookingResponse
	err  error
}

func (f *fakeCanceller) Cancel(_ context.Context, req *bookingmodels.CancelBookingRequest) (*bookingmodels.BookingResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeCalculator struct {
	calls      int
	serviceIDs []int64
	window     domain.TimeWindow
	entries    []domain.ServiceAvailability
	err        error
}

func (f *fakeCalculator) CheckByIDs(_ context.Context, _ int64, serviceIDs []int64, window domain.TimeWindow, _ *int64) ([]domain.ServiceAvailability, error) {
	f.calls++
	f.serviceIDs = serviceIDs
	f.window = window
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeCatalog struct {
	byName  map[string]*domain.ServiceItem
	all     []domain.ServiceItem
	listErr error
}

func (f *fakeCatalog) FindActiveByName(_ context.Context, _ int64, name string) (*domain.ServiceItem, error) {
	item, ok := f.byName[strings.ToLower(name)]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return item, nil
}

func (f *fakeCatalog) ListActiveByTenant(_ context.Context, _ int64, _ *string) ([]domain.ServiceItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.all, nil
}

type fixture struct {
	creator    *fakeCreator
	canceller  *fakeCanceller
	calculator *fakeCalculator
	catalog    *fakeCatalog
	uc         *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		creator:    &fakeCreator{},
		canceller:  &fakeCanceller{},
		calculator: &fakeCalculator{},
		catalog:    &fakeCatalog{byName: map[string]*domain.ServiceItem{}},
	}
	f.uc = NewUseCase(f.creator, f.canceller, f.calculator, f.catalog, stubLogger{})
	return f
}

func catalogItem(id int64, name, category string) *domain.ServiceItem {
	return &domain.ServiceItem{
		ID:               id,
		TenantID:         1,
		Name:             name,
		Category:         category,
		AvailabilityType: domain.AvailabilityLimited,
		Quantity:         2,
		Active:           true,
		BasePrice:        100,
	}
}

func TestExecute_InvalidTenant(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{TenantID: 0, Action: ActionCreateBooking})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, resp)
}

func TestExecute_UnknownAction(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{TenantID: 1, Action: "dance"})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Unknown action type: dance", resp.Message)
}

func TestExecute_CreateBooking(t *testing.T) {
	f := newFixture()
	sessionID := uuid.New()
	f.creator.resp = &create_booking.Response{
		ID:       101,
		TenantID: 1,
		Status:   string(domain.StatusPending),
	}

	req := &Request{
		TenantID:  1,
		Action:    ActionCreateBooking,
		SessionID: &sessionID,
		CreateBooking: &CreateBookingParams{
			Title:     "Sauna evening",
			StartTime: time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC),
			Customer:  CustomerInfo{Name: "Alex", Email: "alex@example.com"},
			Services: []ServiceSelection{
				{Name: ptr.Ptr("sauna"), Quantity: 2},
			},
		},
	}

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Booking created successfully", resp.Message)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(101), resp.Booking.ID)

	// Запрос ассистента собирается с правильным источником и метаданными
	created := f.creator.req
	require.NotNil(t, created)
	assert.Equal(t, domain.SourceAIAssistant, created.Source)
	assert.Equal(t, &sessionID, created.AISessionID)
	require.NotNil(t, created.AIConfidence)
	assert.InDelta(t, defaultConfidence, *created.AIConfidence, 0.0001)
	require.Len(t, created.Services, 1)
	assert.Equal(t, "sauna", *created.Services[0].Name)
	assert.Equal(t, 2, created.Services[0].Quantity)
}

func TestExecute_CreateBooking_AutoConfirmedMessage(t *testing.T) {
	f := newFixture()
	f.creator.resp = &create_booking.Response{
		ID:            102,
		Status:        string(domain.StatusConfirmed),
		AutoConfirmed: true,
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Action:   ActionCreateBooking,
		CreateBooking: &CreateBookingParams{
			Title:     "Pool party",
			StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			Customer:  CustomerInfo{Name: "Alex"},
			Services:  []ServiceSelection{{ID: ptr.Ptr(int64(10))}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Booking confirmed successfully", resp.Message)
}

func TestExecute_CreateBooking_ExplicitConfidenceKept(t *testing.T) {
	f := newFixture()
	f.creator.resp = &create_booking.Response{ID: 103}

	_, err := f.uc.Execute(context.Background(), &Request{
		TenantID:   1,
		Action:     ActionCreateBooking,
		Confidence: ptr.Ptr(0.95),
		CreateBooking: &CreateBookingParams{
			Title:     "Workshop",
			StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			Customer:  CustomerInfo{Name: "Alex"},
			Services:  []ServiceSelection{{ID: ptr.Ptr(int64(10))}},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, f.creator.req.AIConfidence)
	assert.InDelta(t, 0.95, *f.creator.req.AIConfidence, 0.0001)
}

func TestExecute_CreateBooking_MissingParams(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{TenantID: 1, Action: ActionCreateBooking})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Nil(t, f.creator.req)
}

func TestExecute_CreateBooking_RejectionBecomesFailure(t *testing.T) {
	f := newFixture()
	f.creator.err = create_booking.ErrNoValidServices

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Action:   ActionCreateBooking,
		CreateBooking: &CreateBookingParams{
			Title:     "Workshop",
			StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			Customer:  CustomerInfo{Name: "Alex"},
			Services:  []ServiceSelection{{Name: ptr.Ptr("ghost")}},
		},
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Failed to create booking")
	assert.Contains(t, resp.Message, create_booking.ErrNoValidServices.Error())
}

func TestExecute_CreateBooking_InternalErrorPropagates(t *testing.T) {
	f := newFixture()
	f.creator.err = errors.New("storage down")

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Action:   ActionCreateBooking,
		CreateBooking: &CreateBookingParams{
			Title:     "Workshop",
			StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			Customer:  CustomerInfo{Name: "Alex"},
			Services:  []ServiceSelection{{ID: ptr.Ptr(int64(10))}},
		},
	})

	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestExecute_CancelBooking(t *testing.T) {
	f := newFixture()
	f.canceller.resp = &bookingmodels.BookingResponse{
		ID:     42,
		Status: string(domain.StatusCancelled),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		Action:        ActionCancelBooking,
		CancelBooking: &CancelBookingParams{BookingID: 42, Reason: "guest asked"},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Booking cancelled successfully", resp.Message)
	require.NotNil(t, resp.Cancelled)
	assert.Equal(t, int64(42), resp.Cancelled.BookingID)
	assert.Equal(t, string(domain.StatusCancelled), resp.Cancelled.Status)

	require.NotNil(t, f.canceller.req)
	assert.Equal(t, "guest asked", f.canceller.req.Reason)
	assert.Equal(t, string(domain.SourceAIAssistant), f.canceller.req.CancelledBy)
}

func TestExecute_CancelBooking_MissingID(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		Action:        ActionCancelBooking,
		CancelBooking: &CancelBookingParams{},
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Booking ID is required for cancellation", resp.Message)
	assert.Nil(t, f.canceller.req)
}

func TestExecute_CancelBooking_NotFound(t *testing.T) {
	f := newFixture()
	f.canceller.err = bookingsService.ErrBookingNotFound

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		Action:        ActionCancelBooking,
		CancelBooking: &CancelBookingParams{BookingID: 999},
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Booking not found", resp.Message)
}

func TestExecute_CheckAvailability(t *testing.T) {
	f := newFixture()
	f.catalog.byName["sauna"] = catalogItem(10, "Sauna", "wellness")
	f.catalog.byName["pool"] = catalogItem(11, "Pool", "wellness")
	f.calculator.entries = []domain.ServiceAvailability{
		{ServiceID: 10, ServiceName: "Sauna", Available: true, QuantityAvailable: 2},
		{ServiceID: 11, ServiceName: "Pool", Available: false, Reason: "fully booked for the requested time"},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Action:   ActionCheckAvailability,
		CheckAvailability: &CheckAvailabilityParams{
			ServiceNames: []string{"Sauna", "Pool", "Ghost room"},
			StartTime:    time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			EndTime:      time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Availability checked for 2 services", resp.Message)

	// Ненайденное имя пропущено без ошибки
	assert.Equal(t, []int64{10, 11}, f.calculator.serviceIDs)

	report := resp.Availability
	require.NotNil(t, report)
	assert.Equal(t, 2, report.TotalChecked)
	require.Len(t, report.Available, 1)
	assert.Equal(t, int64(10), report.Available[0].ServiceID)
	assert.Equal(t, "wellness", report.Available[0].Category)
	require.Len(t, report.Unavailable, 1)
	assert.Equal(t, "fully booked for the requested time", report.Unavailable[0].Reason)
}

func TestExecute_CheckAvailability_NoMatches(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Action:   ActionCheckAvailability,
		CheckAvailability: &CheckAvailabilityParams{
			ServiceNames: []string{"Ghost room"},
			StartTime:    time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			EndTime:      time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		},
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "No services found matching the specified names", resp.Message)
	assert.Zero(t, f.calculator.calls)
}

func TestExecute_CheckAvailability_InvalidWindow(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Action:   ActionCheckAvailability,
		CheckAvailability: &CheckAvailabilityParams{
			ServiceNames: []string{"Sauna"},
			StartTime:    time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			EndTime:      time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		},
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "End time must be after start time", resp.Message)
}

func TestExecute_CheckServiceExists_Found(t *testing.T) {
	f := newFixture()
	f.catalog.byName["sauna"] = catalogItem(10, "Sauna", "wellness")

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:           1,
		Action:             ActionCheckServiceExists,
		CheckServiceExists: &CheckServiceExistsParams{ServiceName: "Sauna"},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Found service: Sauna", resp.Message)
	require.NotNil(t, resp.ServiceCheck)
	assert.True(t, resp.ServiceCheck.Exists)
	require.NotNil(t, resp.ServiceCheck.Service)
	assert.Equal(t, int64(10), resp.ServiceCheck.Service.ID)
	assert.Equal(t, "wellness", resp.ServiceCheck.Service.Category)
	assert.Equal(t, string(domain.AvailabilityLimited), resp.ServiceCheck.Service.AvailabilityType)
}

func TestExecute_CheckServiceExists_SuggestionsCapped(t *testing.T) {
	f := newFixture()
	f.catalog.all = []domain.ServiceItem{
		{ID: 1, Name: "Sauna"},
		{ID: 2, Name: "Pool"},
		{ID: 3, Name: "Gym"},
		{ID: 4, Name: "Tennis court"},
		{ID: 5, Name: "Massage"},
		{ID: 6, Name: "Bowling"},
		{ID: 7, Name: "Billiards"},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:           1,
		Action:             ActionCheckServiceExists,
		CheckServiceExists: &CheckServiceExistsParams{ServiceName: "Spa"},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, `Service "Spa" not found in catalog`, resp.Message)
	require.NotNil(t, resp.ServiceCheck)
	assert.False(t, resp.ServiceCheck.Exists)
	assert.Nil(t, resp.ServiceCheck.Service)
	assert.Equal(t, []string{"Sauna", "Pool", "Gym", "Tennis court", "Massage"}, resp.ServiceCheck.Suggestions)
}

func TestExecute_CheckServiceExists_SuggestionsOptional(t *testing.T) {
	f := newFixture()
	f.catalog.listErr = errors.New("storage down")

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:           1,
		Action:             ActionCheckServiceExists,
		CheckServiceExists: &CheckServiceExistsParams{ServiceName: "Spa"},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.ServiceCheck.Exists)
	assert.Empty(t, resp.ServiceCheck.Suggestions)
}
