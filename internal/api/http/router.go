package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/buckeye-it/ticket-autopilot/internal/api/http/handlers"
	"github.com/buckeye-it/ticket-autopilot/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Run               *handlers.RunHandler
	TriggerMiddleware *auth.TriggerMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	runGroup := app.Group("/run", cfg.TriggerMiddleware.Handle)
	runGroup.Post("/assignment", cfg.Run.RunAssignment)
	runGroup.Post("/vip", cfg.Run.RunVIP)
}
