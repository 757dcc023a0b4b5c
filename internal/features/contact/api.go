package contact

import (
	"pocket-crm/internal/config"
	"pocket-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ContactApi struct {
	controller *ContactController
	config     *config.Config
}

func NewContactApi(controller *ContactController, config *config.Config) *ContactApi {
	return &ContactApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all contact routes
func (h *ContactApi) Setup(app *fiber.App) {
	contacts := app.Group("/api/contacts", middleware.AuthMiddleware(h.config.SkipAuth))

	contacts.Get("/", h.controller.ListContacts)
	contacts.Post("/", h.controller.CreateContact)
	contacts.Get("/:id", h.controller.GetContact)
	contacts.Put("/:id", h.controller.UpdateContact)
	contacts.Delete("/:id", h.controller.DeleteContact)
}
