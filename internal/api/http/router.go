package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aidesk/ticket-backend/internal/api/http/handlers"
	"github.com/aidesk/ticket-backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Tickets  *handlers.TicketsHandler
	Comments *handlers.CommentsHandler
	Users    *handlers.UsersHandler
	Identity *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The /tickets and /users groups are the
// protected zones; auth and health routes bypass the identity gateway.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/google", cfg.Auth.GoogleAuth)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Identity.Optional, cfg.Tickets.Submit)

	protected := tickets.Group("", cfg.Identity.Require)
	protected.Get("/", cfg.Tickets.List)
	protected.Patch("/:id", cfg.Tickets.Update)
	protected.Get("/:id/comments", cfg.Comments.List)
	protected.Post("/:id/comments", cfg.Comments.Add)
	protected.Get("/:id/logs", cfg.Tickets.Logs)

	users := app.Group("/users", cfg.Identity.Require)
	users.Get("/", cfg.Users.List)
}
