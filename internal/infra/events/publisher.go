package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger is the leveled printf logger injected by the composition root.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher sends reservation events to RabbitMQ over a long-lived
// connection, redialing lazily when the broker drops it. Every error is
// logged and returned so the caller can choose to ignore it; publishing
// is fire-and-forget from the booking flow's point of view.
type Publisher struct {
	url    string
	queue  string
	logger Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher creates a publisher for the given broker URL and queue.
// The connection is established on first publish.
func NewPublisher(url, queue string, logger Logger) *Publisher {
	return &Publisher{url: url, queue: queue, logger: logger}
}

// channelLocked returns a live channel, dialing and declaring the queue
// (idempotent, durable) when none is open.
func (p *Publisher) channelLocked() (*amqp.Channel, error) {
	if p.ch != nil && p.conn != nil && !p.conn.IsClosed() && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.resetLocked()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("events: dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare queue: %w", err)
	}

	p.conn = conn
	p.ch = ch
	p.logger.Info("Events: connected to broker, queue %s ready", p.queue)
	return ch, nil
}

func (p *Publisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// PublishReservationConfirmed publishes the event as a persistent JSON
// message, dropping and redialing the connection on failure so the next
// attempt starts clean.
func (p *Publisher) PublishReservationConfirmed(ctx context.Context, event ReservationConfirmedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Events: marshal event failed: %v", err)
		return fmt.Errorf("events: marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		p.logger.Error("Events: broker unavailable: %v", err)
		return err
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.resetLocked()
		p.logger.Error("Events: publish to %s failed: %v", p.queue, err)
		return fmt.Errorf("events: publish: %w", err)
	}

	p.logger.Info("Events: published reservation.confirmed id=%d code=%s",
		event.ReservationID, event.ConfirmationCode)
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}

// NopPublisher satisfies the publishing port when events are disabled.
type NopPublisher struct{}

// PublishReservationConfirmed does nothing.
func (NopPublisher) PublishReservationConfirmed(context.Context, ReservationConfirmedEvent) error {
	return nil
}
