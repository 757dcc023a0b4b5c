package lead

import (
	"pocket-crm/internal/config"
	"pocket-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LeadApi struct {
	controller *LeadController
	config     *config.Config
}

func NewLeadApi(controller *LeadController, config *config.Config) *LeadApi {
	return &LeadApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all lead routes
func (h *LeadApi) Setup(app *fiber.App) {
	leads := app.Group("/api/leads", middleware.AuthMiddleware(h.config.SkipAuth))

	leads.Get("/", h.controller.ListLeads)
	leads.Get("/options", h.controller.Options)
	leads.Post("/", h.controller.CreateLead)
	leads.Get("/:id", h.controller.GetLead)
	leads.Put("/:id", h.controller.UpdateLead)
	leads.Delete("/:id", h.controller.DeleteLead)
	leads.Post("/:id/convert", h.controller.ConvertLead)
}
