package system

import (
	"pocket-crm/internal/config"
	"pocket-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthApi struct {
	controller *HealthController
	config     *config.Config
}

func NewHealthApi(controller *HealthController, cfg *config.Config) *HealthApi {
	return &HealthApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers health, metrics and caller routes
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/api/health", h.controller.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/api/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
}
