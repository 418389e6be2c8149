package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-analytics/internal/api/http/handlers"
	"github.com/spec-kit/request-analytics/internal/auth"
	"github.com/spec-kit/request-analytics/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/staff/login", cfg.Staff.Login)

	staff := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireStaffRole())
	staff.Get("/me", cfg.Staff.Me)

	reports := staff.Group("/analytics", auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleAnalyst))
	reports.Get("/report", cfg.Analytics.Report)
	reports.Get("/departments", cfg.Analytics.Departments)
}
