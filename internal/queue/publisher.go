package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/aidesk/ticket-backend/internal/config"
)

// Publisher hands ticket-processing jobs to RabbitMQ. Each publish opens a
// fresh connection, declares the durable queue and tears the connection
// down within a bounded grace period whether or not the broker
// acknowledged, so connections are never leaked.
type Publisher struct {
	cfg    config.RabbitMQConfig
	logger *zap.Logger
}

// NewPublisher builds a publisher for the configured broker.
func NewPublisher(cfg config.RabbitMQConfig, logger *zap.Logger) *Publisher {
	return &Publisher{cfg: cfg, logger: logger}
}

// Publish sends a persistent {ticket_id, description} message to the
// processing queue.
func (p *Publisher) Publish(ctx context.Context, ticketID, description string) error {
	conn, err := amqp.Dial(p.cfg.URL())
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		p.teardown(nil, conn)
		return fmt.Errorf("open channel: %w", err)
	}
	defer p.teardown(ch, conn)

	// Idempotent: creates the queue if missing, no-ops otherwise.
	if _, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", p.cfg.Queue, err)
	}

	body, err := json.Marshal(TicketMessage{TicketID: ticketID, Description: description})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", p.cfg.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.cfg.Queue, err)
	}

	p.logger.Info("queued ticket for processing", zap.String("ticket_id", ticketID))
	return nil
}

// teardown closes channel and connection, bounded by the configured grace
// period.
func (p *Publisher) teardown(ch *amqp.Channel, conn *amqp.Connection) {
	done := make(chan struct{})
	go func() {
		if ch != nil {
			_ = ch.Close()
		}
		_ = conn.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(p.cfg.CloseGrace()):
		p.logger.Warn("broker teardown exceeded grace period", zap.Duration("grace", p.cfg.CloseGrace()))
	}
}
