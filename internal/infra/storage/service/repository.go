package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"tenant_id",
	"name",
	"description",
	"category",
	"availability_type",
	"quantity",
	"active",
	"base_price",
	"price_per_hour",
	"price_per_day",
	"price_per_week",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с каталогом услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу тенанта по ID независимо от активности.
// Неактивная услуга нужна проверке доступности, чтобы вернуть причину
// отказа, а не "не найдено".
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := r.scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return item, nil
}

// GetActiveByID получает активную услугу тенанта по ID
func (r *Repository) GetActiveByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := r.scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - scan service: %v", ErrScanRow, err)
	}

	return item, nil
}

// FindActiveByName ищет активную услугу тенанта по подстроке имени без учета
// регистра. При нескольких совпадениях берется услуга с наименьшим ID.
func (r *Repository) FindActiveByName(ctx context.Context, tenantID int64, name string) (*domain.ServiceItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true}).
		Where(squirrel.ILike{"name": "%" + name + "%"}).
		OrderBy("id").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByName - build select query: %v", ErrBuildQuery, err)
	}

	item, err := r.scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByName - scan service: %v", ErrScanRow, err)
	}

	return item, nil
}

// ListByIDs получает услуги тенанта по списку ID, включая неактивные
func (r *Repository) ListByIDs(ctx context.Context, tenantID int64, ids []int64) ([]domain.ServiceItem, error) {
	if len(ids) == 0 {
		return []domain.ServiceItem{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": ids, "tenant_id": tenantID}).
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanServices(rows)
}

// ListActiveByTenant получает активные услуги тенанта с опциональным фильтром
// по категории
func (r *Repository) ListActiveByTenant(ctx context.Context, tenantID int64, category *string) ([]domain.ServiceItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true})

	if category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *category})
	}

	query, args, err := selectBuilder.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanServices(rows)
}

// LockByIDs перечитывает услуги тенанта под блокировкой строк.
// FOR UPDATE добавляется только внутри транзакции: порядок блокировки по
// возрастанию ID одинаков для всех конкурирующих транзакций, что исключает
// взаимные блокировки при оформлении пересекающихся бронирований.
func (r *Repository) LockByIDs(ctx context.Context, tenantID int64, ids []int64) ([]domain.ServiceItem, error) {
	if len(ids) == 0 {
		return []domain.ServiceItem{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": ids, "tenant_id": tenantID}).
		OrderBy("id")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LockByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LockByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanServices(rows)
}

// CountActiveByTenant считает активные услуги тенанта
func (r *Repository) CountActiveByTenant(ctx context.Context, tenantID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByTenant - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByTenant - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// scanService сканирует одну строку результата в услугу
func (r *Repository) scanService(row *sql.Row) (*domain.ServiceItem, error) {
	var item domain.ServiceItem
	var pricePerHour, pricePerDay, pricePerWeek sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.TenantID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.AvailabilityType,
		&item.Quantity,
		&item.Active,
		&item.BasePrice,
		&pricePerHour,
		&pricePerDay,
		&pricePerWeek,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	fillPrices(&item, pricePerHour, pricePerDay, pricePerWeek)
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}

// scanServices сканирует результаты запроса в слайс услуг
func (r *Repository) scanServices(rows *sql.Rows) ([]domain.ServiceItem, error) {
	services := make([]domain.ServiceItem, 0)

	for rows.Next() {
		var item domain.ServiceItem
		var pricePerHour, pricePerDay, pricePerWeek sql.NullFloat64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.TenantID,
			&item.Name,
			&item.Description,
			&item.Category,
			&item.AvailabilityType,
			&item.Quantity,
			&item.Active,
			&item.BasePrice,
			&pricePerHour,
			&pricePerDay,
			&pricePerWeek,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanServices - scan row: %v", ErrScanRow, err)
		}

		fillPrices(&item, pricePerHour, pricePerDay, pricePerWeek)
		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time

		services = append(services, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

func fillPrices(item *domain.ServiceItem, perHour, perDay, perWeek sql.NullFloat64) {
	if perHour.Valid {
		item.PricePerHour = &perHour.Float64
	}
	if perDay.Valid {
		item.PricePerDay = &perDay.Float64
	}
	if perWeek.Valid {
		item.PricePerWeek = &perWeek.Float64
	}
}
