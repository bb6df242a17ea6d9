package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CalendarService/internal/service/settings/models"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeSettingsRepo struct {
	stored  *domain.CalendarSettings
	getErr  error
	saveErr error

	created *domain.CalendarSettings
	updated *domain.CalendarSettings
}

func (f *fakeSettingsRepo) GetByTenant(_ context.Context, _ int64) (*domain.CalendarSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.stored
	return &copied, nil
}

func (f *fakeSettingsRepo) Create(_ context.Context, s *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	saved := *s
	saved.ID = 1
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt
	f.created = &saved
	return &saved, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	saved := *s
	saved.UpdatedAt = time.Now()
	f.updated = &saved
	return &saved, nil
}

type fixture struct {
	repo *fakeSettingsRepo
	svc  *Service
}

func newFixture() *fixture {
	f := &fixture{repo: &fakeSettingsRepo{getErr: settingsRepo.ErrSettingsNotFound}}
	f.svc = NewService(f.repo, stubLogger{})
	return f
}

func TestService_Get_DefaultsWhenMissing(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.TenantID)
	assert.Equal(t, "08:00", resp.BusinessHoursStart)
	assert.Equal(t, "18:00", resp.BusinessHoursEnd)
	assert.False(t, resp.AIBookingAutoConfirm)
	assert.InDelta(t, 0.8, resp.AIConfidenceThreshold, 1e-9)

	// Строка не создавалась, временных меток нет
	assert.Nil(t, resp.CreatedAt)
	assert.Nil(t, f.repo.created)
}

func TestService_Get_Existing(t *testing.T) {
	f := newFixture()
	f.repo.getErr = nil
	f.repo.stored = &domain.CalendarSettings{
		ID:                    3,
		TenantID:              7,
		BusinessHoursStart:    "10:00",
		BusinessHoursEnd:      "22:00",
		AIBookingAutoConfirm:  true,
		AIConfidenceThreshold: 0.5,
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	resp, err := f.svc.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "10:00", resp.BusinessHoursStart)
	assert.True(t, resp.AIBookingAutoConfirm)
	assert.NotNil(t, resp.CreatedAt)
}

func TestService_Update_CreatesOverDefaults(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Update(context.Background(), &models.UpdateSettingsRequest{
		TenantID:           7,
		BusinessHoursStart: ptr.Ptr("09:00"),
	})
	require.NoError(t, err)

	// Неуказанные поля берутся из значений по умолчанию
	require.NotNil(t, f.repo.created)
	assert.Nil(t, f.repo.updated)
	assert.Equal(t, "09:00", resp.BusinessHoursStart)
	assert.Equal(t, "18:00", resp.BusinessHoursEnd)
	assert.InDelta(t, 0.8, resp.AIConfidenceThreshold, 1e-9)
}

func TestService_Update_PartialOverExisting(t *testing.T) {
	f := newFixture()
	f.repo.getErr = nil
	f.repo.stored = &domain.CalendarSettings{
		ID:                    3,
		TenantID:              7,
		BusinessHoursStart:    "10:00",
		BusinessHoursEnd:      "22:00",
		AIConfidenceThreshold: 0.5,
	}

	resp, err := f.svc.Update(context.Background(), &models.UpdateSettingsRequest{
		TenantID:              7,
		AIConfidenceThreshold: ptr.Ptr(0.9),
	})
	require.NoError(t, err)

	require.NotNil(t, f.repo.updated)
	assert.Nil(t, f.repo.created)
	assert.Equal(t, "10:00", resp.BusinessHoursStart)
	assert.InDelta(t, 0.9, resp.AIConfidenceThreshold, 1e-9)
}

func TestService_Update_CreateRaceFallsBackToUpdate(t *testing.T) {
	f := newFixture()
	f.repo.saveErr = settingsRepo.ErrSettingsAlreadyExist

	resp, err := f.svc.Update(context.Background(), &models.UpdateSettingsRequest{
		TenantID:           7,
		BusinessHoursStart: ptr.Ptr("09:00"),
	})
	require.NoError(t, err)
	require.NotNil(t, f.repo.updated)
	assert.Equal(t, "09:00", resp.BusinessHoursStart)
}

func TestService_Update_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateSettingsRequest
	}{
		{
			name: "start after end",
			req: models.UpdateSettingsRequest{
				TenantID:           7,
				BusinessHoursStart: ptr.Ptr("19:00"),
				BusinessHoursEnd:   ptr.Ptr("09:00"),
			},
		},
		{
			name: "malformed start",
			req: models.UpdateSettingsRequest{
				TenantID:           7,
				BusinessHoursStart: ptr.Ptr("9am"),
			},
		},
		{
			name: "threshold above one",
			req: models.UpdateSettingsRequest{
				TenantID:              7,
				AIConfidenceThreshold: ptr.Ptr(1.5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.Update(context.Background(), &tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, f.repo.created)
			assert.Nil(t, f.repo.updated)
		})
	}
}

func TestService_Get_RepositoryErrorWrapped(t *testing.T) {
	f := newFixture()
	f.repo.getErr = errors.New("connection refused")

	_, err := f.svc.Get(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}
