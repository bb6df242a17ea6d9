package quote_price

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса котировки стоимости услуги за окно времени
type Request struct {
	TenantID  int64
	Service   domain.ServiceRef
	StartTime time.Time
	EndTime   time.Time
}

// Response модель ответа с котировкой
type Response struct {
	ServiceID   int64
	ServiceName string

	StartTime     time.Time
	EndTime       time.Time
	DurationHours float64

	Quantity   int
	UnitPrice  float64
	TotalPrice float64

	// Ставки тарифной сетки услуги, по которым считалась котировка
	BasePrice    float64
	PricePerHour *float64
	PricePerDay  *float64
	PricePerWeek *float64
}
