package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitPublisher struct {
	url   string
	queue string
	log   *zap.Logger
}

// NewRabbitPublisher publishes persistent JSON messages to a durable queue
// on the default exchange. Each publish uses its own short connection.
func NewRabbitPublisher(url, queue string, log *zap.Logger) Publisher {
	return &rabbitPublisher{
		url:   url,
		queue: queue,
		log:   log.With(zap.String("component", "publisher")),
	}
}

func declareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return nil
}

func (p *rabbitPublisher) PublishReservationCreated(ctx context.Context, msg ReservationCreated) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declareQueue(ch, p.queue); err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         msg.Type,
		MessageId:    msg.ReservationID,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", msg.Type, err)
	}

	p.log.Debug("Message published",
		zap.String("type", msg.Type),
		zap.String("reservation_id", msg.ReservationID),
	)
	return nil
}

// Handler processes one delivery body. A returned error rejects the message
// without requeueing it.
type Handler interface {
	Handle(ctx context.Context, body []byte) error
}

type Consumer struct {
	url      string
	queue    string
	prefetch int
	handler  Handler
	log      *zap.Logger
}

func NewConsumer(url, queue string, handler Handler, log *zap.Logger) *Consumer {
	return &Consumer{
		url:      url,
		queue:    queue,
		prefetch: 10,
		handler:  handler,
		log:      log.With(zap.String("component", "consumer")),
	}
}

// Run consumes until ctx is cancelled, reconnecting with a doubling delay
// capped at 30s whenever the broker goes away.
func (c *Consumer) Run(ctx context.Context) {
	delay := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("Failed to dial broker", zap.Error(err), zap.Duration("retry_in", delay))
			if !sleep(ctx, delay) {
				return
			}
			if delay < 30*time.Second {
				delay *= 2
			}
			continue
		}
		delay = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			c.log.Info("Consumer stopped")
			return
		}
		c.log.Warn("Consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.log.Warn("Failed to set QoS", zap.Error(err))
	}

	if err := declareQueue(ch, c.queue); err != nil {
		return err
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.log.Info("Consumer started", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handler.Handle(ctx, d.Body); err != nil {
				c.log.Error("Failed to handle message",
					zap.Error(err),
					zap.String("message_id", d.MessageId),
				)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
