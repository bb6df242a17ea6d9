package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"booking_id",
	"service_id",
	"quantity",
	"status",
	"unit_price",
	"total_price",
	"service_name",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со строками резерваций услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает строки резерваций для бронирования одним запросом.
// Вызывается в транзакции оформления бронирования, порядок возвращаемых
// строк совпадает с порядком переданных.
func (r *Repository) CreateBatch(ctx context.Context, bookingID int64, reservations []domain.Reservation) ([]domain.Reservation, error) {
	if len(reservations) == 0 {
		return []domain.Reservation{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("reservations").
		Columns(
			"booking_id",
			"service_id",
			"quantity",
			"status",
			"unit_price",
			"total_price",
			"service_name",
		)

	for _, res := range reservations {
		insertBuilder = insertBuilder.Values(
			bookingID,
			res.ServiceID,
			res.Quantity,
			res.Status,
			res.UnitPrice,
			res.TotalPrice,
			res.ServiceName,
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

	created := make([]domain.Reservation, 0, len(reservations))
	idx := 0
	for rows.Next() {
		if idx >= len(reservations) {
			return nil, fmt.Errorf("%w: CreateBatch - more rows returned than inserted", ErrScanRow)
		}

		res := reservations[idx]
		res.BookingID = bookingID

		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&res.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan row: %v", ErrScanRow, err)
		}
		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		created = append(created, res)
		idx++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return created, nil
}

// GetByBookingID получает все резервации бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByBookingIDs получает резервации для набора бронирований одним запросом,
// сгруппированные по ID бронирования
func (r *Repository) GetByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64][]domain.Reservation, error) {
	result := make(map[int64][]domain.Reservation)
	if len(bookingIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("booking_id, id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	for _, res := range reservations {
		result[res.BookingID] = append(result[res.BookingID], res)
	}

	return result, nil
}

// FindOverlappingForServices находит резервации указанных услуг в активных
// бронированиях тенанта, чьи окна пересекают запрошенный полуинтервал.
// Бронирование, заканчивающееся ровно в window.Start, не считается пересекающим.
//
// Один вызов обслуживает проверку всего списка услуг: детектор конфликтов и
// расчет доступности не ходят в БД по одной услуге за раз.
func (r *Repository) FindOverlappingForServices(ctx context.Context, tenantID int64, serviceIDs []int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.ReservationUsage, error) {
	if len(serviceIDs) == 0 {
		return []domain.ReservationUsage{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveBookingStatuses))
	for i, s := range domain.ActiveBookingStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.title",
		"b.status",
		"res.service_id",
		"res.quantity",
		"b.start_time",
		"b.end_time",
	).
		From("reservations res").
		Join("bookings b ON b.id = res.booking_id").
		Where(squirrel.Eq{"b.tenant_id": tenantID}).
		Where(squirrel.Eq{"res.service_id": serviceIDs}).
		Where(squirrel.Eq{"b.status": activeStatusStrings}).
		Where(squirrel.Lt{"b.start_time": window.End}).
		Where(squirrel.Gt{"b.end_time": window.Start})

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.id": *excludeBookingID})
	}

	query, args, err := selectBuilder.
		OrderBy("b.start_time, b.id, res.service_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlappingForServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlappingForServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	usages := make([]domain.ReservationUsage, 0)
	for rows.Next() {
		var usage domain.ReservationUsage

		err := rows.Scan(
			&usage.BookingID,
			&usage.BookingTitle,
			&usage.BookingStatus,
			&usage.ServiceID,
			&usage.Quantity,
			&usage.StartTime,
			&usage.EndTime,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: FindOverlappingForServices - scan row: %v", ErrScanRow, err)
		}

		usages = append(usages, usage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindOverlappingForServices - rows error: %v", ErrScanRow, err)
	}

	return usages, nil
}

// scanReservations сканирует результаты запроса в слайс резерваций
func (r *Repository) scanReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	reservations := make([]domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.BookingID,
			&res.ServiceID,
			&res.Quantity,
			&res.Status,
			&res.UnitPrice,
			&res.TotalPrice,
			&res.ServiceName,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
