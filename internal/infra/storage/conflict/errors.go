package conflict

import "errors"

var (
	// ErrConflictNotFound запись о конфликте не найдена
	ErrConflictNotFound = errors.New("conflict.repository: conflict not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("conflict.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("conflict.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("conflict.repository: failed to scan row")
)
