package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aidesk/ticket-backend/internal/config"
	"github.com/aidesk/ticket-backend/internal/observability"
	"github.com/aidesk/ticket-backend/internal/persistence"
	"github.com/aidesk/ticket-backend/internal/queue"
	"github.com/aidesk/ticket-backend/internal/repository"
	"github.com/aidesk/ticket-backend/internal/worker"
)

const reconnectDelay = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	processor := worker.NewProcessor(repository.NewTicketRepository(pg.PoolHandle()), logger)
	consumer := queue.NewConsumer(cfg.RabbitMQ, logger)

	for {
		err := consumer.Run(ctx, processor.Process)
		if errors.Is(err, context.Canceled) {
			logger.Info("worker stopped")
			return
		}
		logger.Error("consumer stopped; reconnecting", zap.Error(err))

		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-time.After(reconnectDelay):
		}
	}
}
