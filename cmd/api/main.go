package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/aidesk/ticket-backend/internal/api/http"
	"github.com/aidesk/ticket-backend/internal/api/http/handlers"
	"github.com/aidesk/ticket-backend/internal/auth"
	"github.com/aidesk/ticket-backend/internal/config"
	"github.com/aidesk/ticket-backend/internal/observability"
	"github.com/aidesk/ticket-backend/internal/persistence"
	"github.com/aidesk/ticket-backend/internal/policy"
	"github.com/aidesk/ticket-backend/internal/queue"
	"github.com/aidesk/ticket-backend/internal/ratelimit"
	"github.com/aidesk/ticket-backend/internal/repository"
	"github.com/aidesk/ticket-backend/internal/service"
)

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)

	lockoutStore := ratelimit.NewRedisCounterStore(redis.Client)
	lockout := ratelimit.NewLoginLockout(lockoutStore, cfg.Lockout, logger)

	engine := policy.NewEngine()
	publisher := queue.NewPublisher(cfg.RabbitMQ, logger)

	authService := service.NewAuthService(*cfg, userRepo, lockout)
	auditService := service.NewAuditService(engine, auditRepo)
	ticketService := service.NewTicketService(engine, ticketRepo, publisher, auditService, logger)
	commentService := service.NewCommentService(engine, commentRepo)
	directoryService := service.NewDirectoryService(engine, userRepo)

	identity := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService),
		Tickets:  handlers.NewTicketsHandler(ticketService, auditService),
		Comments: handlers.NewCommentsHandler(commentService),
		Users:    handlers.NewUsersHandler(directoryService),
		Identity: identity,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
