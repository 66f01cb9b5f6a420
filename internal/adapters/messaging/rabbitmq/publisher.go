// Package rabbitmq delivers outbox events to a RabbitMQ exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrPublishNacked  = errors.New("broker rejected message")
	ErrConfirmTimeout = errors.New("timed out waiting for publisher confirm")
	ErrChannelClosed  = errors.New("confirm channel closed")
)

// ConfirmableChannel is the part of *amqp.Channel the publisher needs.
type ConfirmableChannel interface {
	Confirm(noWait bool) error
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher publishes one message at a time and waits for its confirm, so
// confirms never need correlating by delivery tag.
type Publisher struct {
	mu             sync.Mutex
	ch             ConfirmableChannel
	confirms       chan amqp.Confirmation
	exchange       string
	confirmTimeout time.Duration
}

// NewPublisher switches ch into confirm mode.
func NewPublisher(ch ConfirmableChannel, exchange string, confirmTimeout time.Duration) (*Publisher, error) {
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}
	return &Publisher{
		ch:             ch,
		confirms:       ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		exchange:       exchange,
		confirmTimeout: confirmTimeout,
	}, nil
}

// Dial connects, declares the durable topic exchange and returns a confirming publisher.
// The caller closes the returned connection.
func Dial(url, exchange string, confirmTimeout time.Duration) (*Publisher, *amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	pub, err := NewPublisher(ch, exchange, confirmTimeout)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return pub, conn, nil
}

// Publish sends the event persistently, routed by its routing key.
func (p *Publisher) Publish(ctx context.Context, event domain.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.CreatedAt,
		Type:         event.EventType,
		Headers: amqp.Table{
			"tenant_id":    event.TenantID,
			"aggregate_id": event.AggregateID,
		},
		Body: event.Payload,
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, event.RoutingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType, err)
	}

	timer := time.NewTimer(p.confirmTimeout)
	defer timer.Stop()

	select {
	case confirm, ok := <-p.confirms:
		if !ok {
			return ErrChannelClosed
		}
		if !confirm.Ack {
			return fmt.Errorf("%w: delivery_tag=%d", ErrPublishNacked, confirm.DeliveryTag)
		}
		return nil
	case <-timer.C:
		return ErrConfirmTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}
