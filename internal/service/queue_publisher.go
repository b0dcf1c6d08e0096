// Package service holds the outbound integrations the HTTP layer
// calls into; currently the RabbitMQ event publisher.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-room-booking/internal/queue"
)

// Publisher emits booking domain events to durable queues. Publishing
// is best-effort: failures are logged, never surfaced to the request
// that triggered them. A nil Publisher (events disabled) is a no-op.
type Publisher struct {
	url string
	log *zap.Logger
}

// NewPublisher returns a Publisher for the given broker URL, or nil
// when the URL is empty so callers can publish unconditionally.
func NewPublisher(url string, log *zap.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url, log: log}
}

// BookingCreated publishes a booking.created event.
func (p *Publisher) BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) {
	p.publish(ctx, queue.BookingCreatedQueue, ev)
}

// BookingCancelled publishes a booking.cancelled event.
func (p *Publisher) BookingCancelled(ctx context.Context, ev queue.BookingCancelledEvent) {
	p.publish(ctx, queue.BookingCancelledQueue, ev)
}

func (p *Publisher) publish(ctx context.Context, queueName string, ev any) {
	if p == nil {
		return
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("broker dial failed", zap.String("queue", queueName), zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("channel open failed", zap.String("queue", queueName), zap.Error(err))
		return
	}
	defer func() { _ = ch.Close() }()

	// idempotent; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("queue declare failed", zap.String("queue", queueName), zap.Error(err))
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("marshal event failed", zap.String("queue", queueName), zap.Error(err))
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Warn("publish failed", zap.String("queue", queueName), zap.Error(err))
	}
}
