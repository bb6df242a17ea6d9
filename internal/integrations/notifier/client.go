package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// DefaultChannel канал Redis для событий бронирований
const DefaultChannel = "booking-events"

// Publisher публикует события жизненного цикла бронирований в Redis Pub/Sub.
// Публикация выполняется по принципу fire-and-forget: ошибки логируются,
// но не прерывают основную операцию.
type Publisher struct {
	client  *redis.Client
	channel string
	timeout time.Duration
	log     Logger
}

// NewPublisher создает новый экземпляр издателя событий
func NewPublisher(client *redis.Client, channel string, timeout time.Duration, log Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Publisher{
		client:  client,
		channel: channel,
		timeout: timeout,
		log:     log,
	}
}

// BookingCreated публикует событие о создании бронирования вместе с
// конфликтами, обнаруженными при создании
func (p *Publisher) BookingCreated(ctx context.Context, booking *domain.Booking, conflicts []domain.ConflictRecord) {
	event := p.newEvent(EventBookingCreated, booking)
	event.Conflicts = conflictPayloads(conflicts)
	p.publish(event)
}

// BookingCancelled публикует событие об отмене бронирования
func (p *Publisher) BookingCancelled(ctx context.Context, booking *domain.Booking) {
	p.publish(p.newEvent(EventBookingCancelled, booking))
}

// BookingStatusChanged публикует событие о смене статуса бронирования
func (p *Publisher) BookingStatusChanged(ctx context.Context, booking *domain.Booking) {
	p.publish(p.newEvent(EventBookingStatusChanged, booking))
}

func (p *Publisher) newEvent(eventType string, booking *domain.Booking) *Event {
	return &Event{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		TenantID:   booking.TenantID,
		OccurredAt: time.Now().UTC(),
		Booking:    bookingPayload(booking),
	}
}

// publish сериализует событие и отправляет его в канал. Использует
// собственный контекст с таймаутом: отмена исходного запроса не должна
// терять событие об уже зафиксированной операции.
func (p *Publisher) publish(event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to publish %s: %v", event.EventType, fmt.Errorf("%w: %v", ErrMarshalEvent, err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.log.Error("Failed to publish %s to channel %s: %v", event.EventType, p.channel, fmt.Errorf("%w: %v", ErrPublishEvent, err))
		return
	}

	p.log.Info("Published %s event_id=%s tenant=%d booking=%d", event.EventType, event.EventID, event.TenantID, event.Booking.ID)
}
