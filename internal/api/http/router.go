package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-insights/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Queries *handlers.QueriesHandler
	Report  *handlers.ReportHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/report", cfg.Report.Info)
	app.Get("/metrics", cfg.Report.Metrics)

	queries := app.Group("/queries")
	queries.Get("/per-week", cfg.Queries.PerWeek)
	queries.Get("/per-building", cfg.Queries.PerBuilding)
	queries.Get("/per-requestor", cfg.Queries.PerRequestor)
	queries.Get("/buildings/:name/per-room", cfg.Queries.PerRoom)
}
