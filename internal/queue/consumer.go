package queue

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/aidesk/ticket-backend/internal/config"
)

// Handler processes one ticket message. A returned error discards the
// message; it is not requeued, so a poison message can never wedge the
// queue.
type Handler func(ctx context.Context, msg TicketMessage) error

// Consumer drains the ticket-processing queue one message at a time.
type Consumer struct {
	cfg    config.RabbitMQConfig
	logger *zap.Logger
}

// NewConsumer builds a consumer for the configured broker.
func NewConsumer(cfg config.RabbitMQConfig, logger *zap.Logger) *Consumer {
	return &Consumer{cfg: cfg, logger: logger}
}

// Run consumes until the context is cancelled or the broker connection
// drops. Messages are acked only after successful handling; malformed
// payloads and handler failures are discarded without requeue.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	conn, err := amqp.Dial(c.cfg.URL())
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil); err != nil {
		return err
	}

	// One message at a time; processing may be slow.
	if err := ch.Qos(1, 0, false); err != nil {
		return err
	}

	deliveries, err := ch.Consume(c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.logger.Info("listening for ticket messages", zap.String("queue", c.cfg.Queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handleDelivery(ctx, delivery, handle)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp.Delivery, handle Handler) {
	var msg TicketMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		c.logger.Warn("discarding malformed message", zap.Error(err))
		_ = delivery.Nack(false, false)
		return
	}
	if msg.TicketID == "" || msg.Description == "" {
		c.logger.Warn("discarding message with missing fields")
		_ = delivery.Nack(false, false)
		return
	}

	if err := handle(ctx, msg); err != nil {
		c.logger.Error("ticket processing failed",
			zap.String("ticket_id", msg.TicketID), zap.Error(err))
		_ = delivery.Nack(false, false)
		return
	}

	_ = delivery.Ack(false)
	c.logger.Info("processed ticket", zap.String("ticket_id", msg.TicketID))
}
