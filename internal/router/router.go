package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skhan-ssq/studianclass-dashboard/internal/config"
	"github.com/skhan-ssq/studianclass-dashboard/internal/handler"
	"github.com/skhan-ssq/studianclass-dashboard/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	DashboardHandler *handler.DashboardHandler
	CohortHandler    *handler.CohortHandler
	MemberHandler    *handler.MemberHandler
	AdminHandler     *handler.AdminHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Dashboard (weekly cohort statistics)
	if deps.DashboardHandler != nil {
		dashboard := app.Group("/api/v2/dashboard")
		deps.DashboardHandler.Register(dashboard)
	}

	// Cohort rankings & period filters
	if deps.CohortHandler != nil {
		cohort := app.Group("/api/v2/cohort")
		deps.CohortHandler.Register(cohort)
	}

	// Individual member lookup
	if deps.MemberHandler != nil {
		member := app.Group("/api/v2/member")
		deps.MemberHandler.Register(member)
	}

	// Operational endpoints
	if deps.AdminHandler != nil {
		admin := app.Group("/api/v2/admin")
		deps.AdminHandler.Register(admin)
	}

	app.Get("/metrics", observability.MetricsHandler())
}
