package settings

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.CalendarSettings, error)
	Create(ctx context.Context, settings *domain.CalendarSettings) (*domain.CalendarSettings, error)
	Update(ctx context.Context, settings *domain.CalendarSettings) (*domain.CalendarSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
