package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникальности (tenant_id)
const pqUniqueViolation = "23505"

var settingsColumns = []string{
	"id",
	"tenant_id",
	"business_hours_start",
	"business_hours_end",
	"ai_booking_auto_confirm",
	"ai_confidence_threshold",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с настройками календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает настройки календаря для тенанта
func (r *Repository) Create(ctx context.Context, settings *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_settings").
		Columns(
			"tenant_id",
			"business_hours_start",
			"business_hours_end",
			"ai_booking_auto_confirm",
			"ai_confidence_threshold",
		).
		Values(
			settings.TenantID,
			settings.BusinessHoursStart,
			settings.BusinessHoursEnd,
			settings.AIBookingAutoConfirm,
			settings.AIConfidenceThreshold,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSettingsAlreadyExist
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

// GetByTenant получает настройки календаря тенанта
func (r *Repository) GetByTenant(ctx context.Context, tenantID int64) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("calendar_settings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.CalendarSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.TenantID,
		&settings.BusinessHoursStart,
		&settings.BusinessHoursEnd,
		&settings.AIBookingAutoConfirm,
		&settings.AIConfidenceThreshold,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Update обновляет настройки календаря тенанта
func (r *Repository) Update(ctx context.Context, settings *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendar_settings").
		Set("business_hours_start", settings.BusinessHoursStart).
		Set("business_hours_end", settings.BusinessHoursEnd).
		Set("ai_booking_auto_confirm", settings.AIBookingAutoConfirm).
		Set("ai_confidence_threshold", settings.AIConfidenceThreshold).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": settings.TenantID}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

// isUniqueViolation проверяет, что ошибка вызвана нарушением уникальности
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return strings.Contains(err.Error(), pqUniqueViolation)
}
