package customfield

import (
	"pocket-crm/internal/config"
	"pocket-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CustomFieldApi struct {
	controller *CustomFieldController
	config     *config.Config
}

func NewCustomFieldApi(controller *CustomFieldController, config *config.Config) *CustomFieldApi {
	return &CustomFieldApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all custom-field routes
func (h *CustomFieldApi) Setup(app *fiber.App) {
	fields := app.Group("/api/custom-fields", middleware.AuthMiddleware(h.config.SkipAuth))

	fields.Get("/", h.controller.ListCustomFields)
	fields.Get("/next-column", h.controller.NextColumn)
	fields.Get("/labels", h.controller.Labels)
	fields.Post("/", h.controller.CreateCustomField)
	fields.Get("/:id", h.controller.GetCustomField)
	fields.Put("/:id", h.controller.UpdateCustomField)
	fields.Delete("/:id", h.controller.DeleteCustomField)
}
