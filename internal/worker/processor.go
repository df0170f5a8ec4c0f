package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/aidesk/ticket-backend/internal/queue"
	"github.com/aidesk/ticket-backend/internal/repository"
)

// Processor enriches queued tickets with a category and summary.
type Processor struct {
	tickets repository.TicketRepository
	logger  *zap.Logger
}

// NewProcessor constructs the processor.
func NewProcessor(tickets repository.TicketRepository, logger *zap.Logger) *Processor {
	return &Processor{tickets: tickets, logger: logger}
}

// Process classifies the ticket description and writes the result back to
// the ticket row.
func (p *Processor) Process(ctx context.Context, msg queue.TicketMessage) error {
	category := Classify(msg.Description)
	summary := Summarize(category, msg.Description)

	patch := repository.TicketPatch{
		Category: &category,
		Summary:  &summary,
	}
	if _, err := p.tickets.Update(ctx, msg.TicketID, patch); err != nil {
		return err
	}

	p.logger.Info("ticket classified",
		zap.String("ticket_id", msg.TicketID),
		zap.String("category", category),
	)
	return nil
}
