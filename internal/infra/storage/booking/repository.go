package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"tenant_id",
	"customer_id",
	"title",
	"start_time",
	"end_time",
	"status",
	"source",
	"notes",
	"total_price",
	"ai_session_id",
	"ai_message_id",
	"ai_confidence",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её: при
// оформлении бронирования вставка выполняется в одной транзакции с
// проверкой занятости услуг.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"tenant_id",
			"customer_id",
			"title",
			"start_time",
			"end_time",
			"status",
			"source",
			"notes",
			"total_price",
			"ai_session_id",
			"ai_message_id",
			"ai_confidence",
		).
		Values(
			booking.TenantID,
			booking.CustomerID,
			booking.Title,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Source,
			booking.Notes,
			booking.TotalPrice,
			booking.AISessionID,
			booking.AIMessageID,
			booking.AIConfidence,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование тенанта по ID.
// Чужие бронирования неотличимы от несуществующих: ErrBookingNotFound.
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByTenantWithFilter получает бронирования тенанта с гибкой фильтрацией.
// Период (From, To) трактуется как пересечение: попадают бронирования,
// чье окно пересекает [From, To).
//
// Примеры использования:
//
//  1. Все активные бронирования тенанта:
//     filter := domain.BookingsFilter{TenantID: 42}
//
//  2. Бронирования, пересекающие период:
//     filter := domain.BookingsFilter{TenantID: 42, From: &from, To: &to}
//
//  3. Только ожидающие подтверждения:
//     status := domain.StatusPending
//     filter := domain.BookingsFilter{TenantID: 42, Status: &status}
//
//  4. Включая отмененные и завершенные:
//     filter := domain.BookingsFilter{TenantID: 42, IncludeInactive: true}
func (r *Repository) GetByTenantWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	// Фильтрация по клиенту (если указан)
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	// Фильтрация по услуге через строки резерваций
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("EXISTS (SELECT 1 FROM reservations res WHERE res.booking_id = bookings.id AND res.service_id = ?)",
				*filter.ServiceID),
		)
	}

	// Фильтрация по периоду: пересечение полуинтервалов
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveBookingStatuses))
		for i, s := range domain.InactiveBookingStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_time DESC, id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListRecentBySource получает последние бронирования тенанта с указанным
// источником, целиком лежащие в периоде. Используется для блока недавних
// AI бронирований на дашборде.
func (r *Repository) ListRecentBySource(ctx context.Context, tenantID int64, source domain.BookingSource, from, to time.Time, limit int) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "source": source}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.LtOrEq{"end_time": to}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRecentBySource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecentBySource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountContainedInPeriod считает бронирования тенанта, целиком лежащие в
// периоде, с опциональными фильтрами по статусу и источнику.
/// Статистика дашборда считает вхождение, а не пересечение: бронирование,
// пересекающее границу месяца, в месячные счетчики не попадает.
func (r *Repository) CountContainedInPeriod(ctx context.Context, tenantID int64, from, to time.Time, status *domain.BookingStatus, source *domain.BookingSource) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.LtOrEq{"end_time": to})

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}
	if source != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"source": *source})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountContainedInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountContainedInPeriod - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountDistinctCustomersSince считает клиентов тенанта, у которых есть
// бронирования, начинающиеся с указанного момента
func (r *Repository) CountDistinctCustomersSince(ctx context.Context, tenantID int64, since time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT customer_id)").
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"start_time": since}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountDistinctCustomersSince - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountDistinctCustomersSince - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования тенанта
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование: переводит в cancelled и заменяет заметки
// текстом с дописанной строкой аудита. Резервации остаются нетронутыми.
func (r *Repository) Cancel(ctx context.Context, tenantID, id int64, notes string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку результата в бронирование
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var sessionID, messageID uuid.NullUUID
	var confidence sql.NullFloat64

	err := row.Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.CustomerID,
		&booking.Title,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Source,
		&booking.Notes,
		&booking.TotalPrice,
		&sessionID,
		&messageID,
		&confidence,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	fillOptionalFields(&booking, sessionID, messageID, confidence, createdAt, updatedAt)

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime
		var sessionID, messageID uuid.NullUUID
		var confidence sql.NullFloat64

		err := rows.Scan(
			&booking.ID,
			&booking.TenantID,
			&booking.CustomerID,
			&booking.Title,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.Source,
			&booking.Notes,
			&booking.TotalPrice,
			&sessionID,
			&messageID,
			&confidence,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		fillOptionalFields(&booking, sessionID, messageID, confidence, createdAt, updatedAt)

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func fillOptionalFields(booking *domain.Booking, sessionID, messageID uuid.NullUUID, confidence sql.NullFloat64, createdAt, updatedAt sql.NullTime) {
	if sessionID.Valid {
		booking.AISessionID = &sessionID.UUID
	}
	if messageID.Valid {
		booking.AIMessageID = &messageID.UUID
	}
	if confidence.Valid {
		booking.AIConfidence = &confidence.Float64
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
}
