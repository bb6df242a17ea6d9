package conflict

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

var conflictColumns = []string{
	"id",
	"tenant_id",
	"conflict_type",
	"severity",
	"booking_id",
	"conflicting_booking_id",
	"service_id",
	"description",
	"suggested_slots",
	"resolution_status",
	"resolved_at",
	"resolution_notes",
	"resolved_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с журналом конфликтов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфликтов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch сохраняет записи о конфликтах одним запросом.
// Вызывается в транзакции оформления бронирования: журнал пишется атомарно
// с самим бронированием. Предложенные слоты сериализуются в JSONB.
func (r *Repository) CreateBatch(ctx context.Context, records []domain.ConflictRecord) ([]domain.ConflictRecord, error) {
	if len(records) == 0 {
		return []domain.ConflictRecord{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("conflicts").
		Columns(
			"tenant_id",
			"conflict_type",
			"severity",
			"booking_id",
			"conflicting_booking_id",
			"service_id",
			"description",
			"suggested_slots",
			"resolution_status",
			"resolution_notes",
			"resolved_by",
		)

	for _, record := range records {
		slotsJSON, err := json.Marshal(record.SuggestedSlots)
		if err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - marshal suggested slots: %v", ErrBuildQuery, err)
		}

		insertBuilder = insertBuilder.Values(
			record.TenantID,
			record.Type,
			record.Severity,
			record.BookingID,
			record.ConflictingBookingID,
			record.ServiceID,
			record.Description,
			slotsJSON,
			record.ResolutionStatus,
			record.ResolutionNotes,
			record.ResolvedBy,
		)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	created := make([]domain.ConflictRecord, 0, len(records))
	idx := 0
	for rows.Next() {
		if idx >= len(records) {
			return nil, fmt.Errorf("%w: CreateBatch - more rows returned than inserted", ErrScanRow)
		}

		record := records[idx]

		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&record.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan row: %v", ErrScanRow, err)
		}
		record.CreatedAt = createdAt.Time
		record.UpdatedAt = updatedAt.Time

		created = append(created, record)
		idx++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return created, nil
}

// GetByID получает запись о конфликте тенанта по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.ConflictRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(conflictColumns...).
		From("conflicts").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	record, err := r.scanConflict(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConflictNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan conflict: %v", ErrScanRow, err)
	}

	return record, nil
}

// ListWithFilter получает записи о конфликтах тенанта с фильтрацией по
// статусу разрешения, бронированию и типу конфликта
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ConflictsFilter) ([]domain.ConflictRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(conflictColumns...).
		From("conflicts").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resolution_status": *filter.Status})
	}
	if filter.BookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_id": *filter.BookingID})
	}
	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"conflict_type": *filter.Type})
	}

	selectBuilder = selectBuilder.OrderBy("created_at DESC, id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanConflicts(rows)
}

// UpdateResolution обновляет статус разрешения конфликта.
// resolved_at проставляется только для закрывающих статусов: эскалированный
// конфликт остается неразрешенным и попадает в счетчики дашборда.
func (r *Repository) UpdateResolution(ctx context.Context, tenantID, id int64, status domain.ResolutionStatus, notes, resolvedBy string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("conflicts").
		Set("resolution_status", status).
		Set("resolution_notes", notes).
		Set("resolved_by", resolvedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID})

	if status == domain.ResolutionResolved || status == domain.ResolutionIgnored {
		updateBuilder = updateBuilder.Set("resolved_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateResolution - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateResolution - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateResolution - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConflictNotFound
	}

	return nil
}

// CountUnresolvedSince считает неразрешенные конфликты тенанта, обнаруженные
// начиная с указанного момента
func (r *Repository) CountUnresolvedSince(ctx context.Context, tenantID int64, since time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	unresolvedStatuses := []string{
		string(domain.ResolutionDetected),
		string(domain.ResolutionEscalated),
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("conflicts").
		Where(squirrel.Eq{"tenant_id": tenantID, "resolution_status": unresolvedStatuses}).
		Where(squirrel.GtOrEq{"created_at": since}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountUnresolvedSince - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUnresolvedSince - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// scanConflict сканирует одну строку результата в запись о конфликте
func (r *Repository) scanConflict(row *sql.Row) (*domain.ConflictRecord, error) {
	var record domain.ConflictRecord
	var bookingID, conflictingBookingID, serviceID sql.NullInt64
	var slotsJSON []byte
	var resolvedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&record.ID,
		&record.TenantID,
		&record.Type,
		&record.Severity,
		&bookingID,
		&conflictingBookingID,
		&serviceID,
		&record.Description,
		&slotsJSON,
		&record.ResolutionStatus,
		&resolvedAt,
		&record.ResolutionNotes,
		&record.ResolvedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := fillConflictFields(&record, bookingID, conflictingBookingID, serviceID, slotsJSON, resolvedAt, createdAt, updatedAt); err != nil {
		return nil, err
	}

	return &record, nil
}

// scanConflicts сканирует результаты запроса в слайс записей о конфликтах
func (r *Repository) scanConflicts(rows *sql.Rows) ([]domain.ConflictRecord, error) {
	records := make([]domain.ConflictRecord, 0)

	for rows.Next() {
		var record domain.ConflictRecord
		var bookingID, conflictingBookingID, serviceID sql.NullInt64
		var slotsJSON []byte
		var resolvedAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&record.ID,
			&record.TenantID,
			&record.Type,
			&record.Severity,
			&bookingID,
			&conflictingBookingID,
			&serviceID,
			&record.Description,
			&slotsJSON,
			&record.ResolutionStatus,
			&resolvedAt,
			&record.ResolutionNotes,
			&record.ResolvedBy,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanConflicts - scan row: %v", ErrScanRow, err)
		}

		if err := fillConflictFields(&record, bookingID, conflictingBookingID, serviceID, slotsJSON, resolvedAt, createdAt, updatedAt); err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanConflicts - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

func fillConflictFields(record *domain.ConflictRecord, bookingID, conflictingBookingID, serviceID sql.NullInt64, slotsJSON []byte, resolvedAt, createdAt, updatedAt sql.NullTime) error {
	if bookingID.Valid {
		record.BookingID = &bookingID.Int64
	}
	if conflictingBookingID.Valid {
		record.ConflictingBookingID = &conflictingBookingID.Int64
	}
	if serviceID.Valid {
		record.ServiceID = &serviceID.Int64
	}
	if resolvedAt.Valid {
		record.ResolvedAt = &resolvedAt.Time
	}
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	record.SuggestedSlots = make([]domain.SuggestedSlot, 0)
	if len(slotsJSON) > 0 {
		if err := json.Unmarshal(slotsJSON, &record.SuggestedSlots); err != nil {
			return fmt.Errorf("%w: unmarshal suggested slots: %v", ErrScanRow, err)
		}
	}

	return nil
}
