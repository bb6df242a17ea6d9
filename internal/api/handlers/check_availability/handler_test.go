package check_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	checkAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/check_availability"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *checkAvailability.Response
	err  error

	lastReq *checkAvailability.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

// serve прогоняет запрос через Auth middleware и handler, как в проде
func serve(t *testing.T, uc *fakeUseCase, tenantHeader, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, stubLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/check", strings.NewReader(body))
	if tenantHeader != "" {
		req.Header.Set(middleware.HeaderTenantID, tenantHeader)
	}
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle_OK(t *testing.T) {
	uc := &fakeUseCase{
		resp: &checkAvailability.Response{
			AllAvailable: false,
			Services: []checkAvailability.ServiceReport{
				{
					ServiceID:           5,
					ServiceName:         "Projector",
					Available:           false,
					Reason:              "fully_booked",
					QuantityTotal:       2,
					QuantityUsed:        2,
					QuantityAvailable:   0,
					OverlappingBookings: []checkAvailability.OverlappingBooking{{BookingID: 77, Title: "Standup", Status: "confirmed", Quantity: 2}},
				},
			},
		},
	}

	body := `{"serviceIds":[5],"startTime":"2025-07-10T10:00:00Z","endTime":"2025-07-10T12:00:00Z","excludeBookingId":55}`
	rec := serve(t, uc, "42", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp CheckAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.AllAvailable)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "fully_booked", resp.Services[0].Reason)
	require.Len(t, resp.Services[0].OverlappingBookings, 1)
	assert.Equal(t, int64(77), resp.Services[0].OverlappingBookings[0].BookingID)

	// tenantID берется из заголовка, остальное из тела
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(42), uc.lastReq.TenantID)
	assert.Equal(t, []int64{5}, uc.lastReq.ServiceIDs)
	require.NotNil(t, uc.lastReq.ExcludeBookingID)
	assert.Equal(t, int64(55), *uc.lastReq.ExcludeBookingID)
}

func TestHandler_Handle_MissingTenant(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, "", `{"serviceIds":[5]}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandler_Handle_MalformedBody(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, "42", `{"serviceIds":[`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandler_Handle_InvalidInput(t *testing.T) {
	uc := &fakeUseCase{err: checkAvailability.ErrInvalidInput}

	rec := serve(t, uc, "42", `{"serviceIds":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Handle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: errors.New("db down")}

	rec := serve(t, uc, "42", `{"serviceIds":[5],"startTime":"2025-07-10T10:00:00Z","endTime":"2025-07-10T12:00:00Z"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"внутренняя ошибка сервера"}`, rec.Body.String())
}
