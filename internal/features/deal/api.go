package deal

import (
	"pocket-crm/internal/config"
	"pocket-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DealApi struct {
	controller *DealController
	config     *config.Config
}

func NewDealApi(controller *DealController, config *config.Config) *DealApi {
	return &DealApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all deal routes
func (h *DealApi) Setup(app *fiber.App) {
	deals := app.Group("/api/deals", middleware.AuthMiddleware(h.config.SkipAuth))

	deals.Get("/", h.controller.ListDeals)
	deals.Get("/options", h.controller.Options)
	deals.Post("/", h.controller.CreateDeal)
	deals.Get("/:id", h.controller.GetDeal)
	deals.Put("/:id", h.controller.UpdateDeal)
	deals.Delete("/:id", h.controller.DeleteDeal)
}
