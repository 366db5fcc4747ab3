package mq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/KaushikNaik2/Schedulix/config"
)

// ErrNotConfirmed the broker nacked the message
var ErrNotConfirmed = errors.New("message not confirmed by broker")

// Publisher sends messages to a single durable queue
type Publisher interface {
	Publish(ctx context.Context, body []byte) error
	Close() error
}

// RabbitPublisher Publisher over one AMQP channel in confirm mode
type RabbitPublisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewRabbitPublisher dials RabbitMQ and declares the queue
func NewRabbitPublisher(cfg *config.QueueConfig, logger *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(cfg.NotificationQueue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", cfg.NotificationQueue, err)
	}

	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	logger.Info("rabbitmq connected", zap.String("queue", cfg.NotificationQueue))

	return &RabbitPublisher{conn: conn, ch: ch, queue: cfg.NotificationQueue, logger: logger}, nil
}

// Publish sends a persistent JSON message and waits for the broker ack
func (p *RabbitPublisher) Publish(ctx context.Context, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("wait confirm: %w", err)
	}
	if !acked {
		return ErrNotConfirmed
	}
	return nil
}

// Close closes the channel and the connection
func (p *RabbitPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.logger.Warn("close rabbitmq channel", zap.Error(err))
	}
	return p.conn.Close()
}
