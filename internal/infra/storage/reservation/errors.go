package reservation

import "errors"

var (
	// ErrReservationNotFound резервация не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
