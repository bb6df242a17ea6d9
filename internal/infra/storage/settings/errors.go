package settings

import "errors"

var (
	// ErrSettingsNotFound настройки календаря не найдены
	ErrSettingsNotFound = errors.New("settings.repository: settings not found")
	// ErrSettingsAlreadyExist настройки для тенанта уже существуют
	ErrSettingsAlreadyExist = errors.New("settings.repository: settings already exist")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
