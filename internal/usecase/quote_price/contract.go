package quote_price

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetActiveByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error)
	FindActiveByName(ctx context.Context, tenantID int64, name string) (*domain.ServiceItem, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
