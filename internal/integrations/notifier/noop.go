package notifier

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Noop издатель-заглушка. Используется, когда Redis выключен в конфигурации:
// сервисы продолжают работать без публикации событий.
type Noop struct{}

func (Noop) BookingCreated(_ context.Context, _ *domain.Booking, _ []domain.ConflictRecord) {}

func (Noop) BookingCancelled(_ context.Context, _ *domain.Booking) {}

func (Noop) BookingStatusChanged(_ context.Context, _ *domain.Booking) {}
