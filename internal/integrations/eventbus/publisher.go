package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует события броней в RabbitMQ.
// Очереди durable, сообщения persistent.
type Publisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   Channel
	log  Logger
}

// Connect подключается к брокеру и объявляет очереди
func Connect(url string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	p, err := NewPublisher(ch, log)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewPublisher создает издателя поверх открытого канала
func NewPublisher(ch Channel, log Logger) (*Publisher, error) {
	for _, queue := range []string{QueueReservationCreated, QueueReservationCancelled} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDeclareQueue, queue, err)
		}
	}

	return &Publisher{ch: ch, log: log}, nil
}

// PublishReservationCreated публикует событие о новой брони
func (p *Publisher) PublishReservationCreated(ctx context.Context, event ReservationCreatedEvent) error {
	return p.publish(ctx, QueueReservationCreated, event)
}

// PublishReservationCancelled публикует событие об отмене брони
func (p *Publisher) PublishReservationCancelled(ctx context.Context, event ReservationCancelledEvent) error {
	return p.publish(ctx, QueueReservationCancelled, event)
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, queue string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %s: marshal event: %v", ErrPublish, queue, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// amqp.Channel не потокобезопасен для публикации
	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, "", queue, false, false, msg)
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, queue, err)
	}

	p.log.Info("Published event to %s", queue)
	return nil
}

// NoopPublisher используется, когда RabbitMQ выключен в конфигурации
type NoopPublisher struct{}

func (NoopPublisher) PublishReservationCreated(ctx context.Context, event ReservationCreatedEvent) error {
	return nil
}

func (NoopPublisher) PublishReservationCancelled(ctx context.Context, event ReservationCancelledEvent) error {
	return nil
}
