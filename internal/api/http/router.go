package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/cuencos-cuarzo/boletos/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Checkout  *handlers.CheckoutHandler
	Tickets   *handlers.TicketHandler
	PublicDir string
}

// RegisterRoutes wires HTTP routes. Static files are registered last so API
// routes take precedence.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)
	app.Get("/ping", cfg.Health.Ping)
	app.Get("/test", cfg.Health.Ping)

	app.Post("/create-checkout-session", cfg.Checkout.CreateCheckoutSession)
	app.Get("/enviar-boleto", cfg.Tickets.SendTicket)

	index := filepath.Join(cfg.PublicDir, "index.html")
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})
	app.Static("/", cfg.PublicDir)
}
