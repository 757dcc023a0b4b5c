package followup

import (
	"pocket-crm/internal/config"
	"pocket-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FollowUpApi struct {
	controller *FollowUpController
	config     *config.Config
}

func NewFollowUpApi(controller *FollowUpController, config *config.Config) *FollowUpApi {
	return &FollowUpApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all follow-up routes
func (h *FollowUpApi) Setup(app *fiber.App) {
	followUps := app.Group("/api/follow-ups", middleware.AuthMiddleware(h.config.SkipAuth))

	followUps.Get("/", h.controller.ListFollowUps)
	followUps.Get("/upcoming", h.controller.ListUpcoming)
	followUps.Get("/options", h.controller.Options)
	followUps.Post("/", h.controller.CreateFollowUp)
	followUps.Get("/:id", h.controller.GetFollowUp)
	followUps.Put("/:id", h.controller.UpdateFollowUp)
	followUps.Delete("/:id", h.controller.DeleteFollowUp)
}
