package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Conversations  *handlers.ConversationsHandler
	Agents         *handlers.AgentsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)
	protected.Patch("/tickets/:id", cfg.Tickets.UpdateTicketField)
	protected.Get("/tickets/:id/activity", cfg.Tickets.ListActivity)

	protected.Get("/tickets/:id/conversations", cfg.Conversations.ListMessages)
	protected.Post("/tickets/:id/conversations", cfg.Conversations.AddMessage)

	protected.Get("/agents", cfg.Agents.ListAgents)
	protected.Post("/agents", cfg.Agents.CreateAgent)
	protected.Put("/agents/:id", cfg.Agents.UpdateAgent)
	protected.Patch("/agents/:id/active", cfg.Agents.SetAgentActive)
}
