package file

import (
	"pocket-crm/internal/config"
	"pocket-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PhotoApi struct {
	controller *PhotoController
	config     *config.Config
}

func NewPhotoApi(controller *PhotoController, config *config.Config) *PhotoApi {
	return &PhotoApi{
		controller: controller,
		config:     config,
	}
}

func (h *PhotoApi) Setup(app *fiber.App) {
	app.Post("/api/contacts/:id/photo", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.UploadPhoto)
	app.Delete("/api/contacts/:id/photo", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.DeletePhoto)

	app.Static(h.config.PhotoURL, h.config.PhotoPath)
}
