package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-tracker/internal/api/http/handlers"
	"github.com/spec-kit/task-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Employees      *handlers.EmployeesHandler
	Tasks          *handlers.TasksHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireAuth())

	api.Get("/employees", cfg.Employees.List)
	api.Post("/employees", cfg.Employees.Create)
	api.Get("/employees/:id", cfg.Employees.Get)
	api.Put("/employees/:id", cfg.Employees.Update)
	api.Delete("/employees/:id", cfg.Employees.Delete)

	api.Get("/tasks", cfg.Tasks.List)
	api.Post("/tasks", cfg.Tasks.Create)
	api.Get("/tasks/:id", cfg.Tasks.Get)
	api.Put("/tasks/:id", cfg.Tasks.Update)
	api.Delete("/tasks/:id", cfg.Tasks.Delete)

	api.Get("/dashboard", cfg.Dashboard.Summary)
}
