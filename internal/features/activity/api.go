package activity

import (
	"pocket-crm/internal/config"
	"pocket-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ActivityApi struct {
	ActivityController *ActivityController
	Config             *config.Config
}

func NewActivityApi(activityController *ActivityController, config *config.Config) *ActivityApi {
	return &ActivityApi{
		ActivityController: activityController,
		Config:             config,
	}
}

func (api *ActivityApi) Setup(app *fiber.App) {
	group := app.Group("/api/activities", middleware.AuthMiddleware(api.Config.SkipAuth))
	group.Get("/calendar", api.ActivityController.GetCalendarEvents)
}
