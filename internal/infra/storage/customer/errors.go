package customer

import "errors"

var (
	// ErrCustomerNotFound клиент не найден
	ErrCustomerNotFound = errors.New("customer.repository: customer not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("customer.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("customer.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("customer.repository: failed to scan row")
)
