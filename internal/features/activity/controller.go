package activity

import (
	"time"

	"pocket-crm/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type ActivityController struct {
	ActivityService ActivityService
}

func NewActivityController(activityService ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// GetCalendarEvents godoc
// @Summary  Follow-ups due between two dates
// @Tags     activities
// @Produce  json
// @Param    start query string true "First day, YYYY-MM-DD"
// @Param    end   query string true "Last day, YYYY-MM-DD (inclusive)"
// @Success  200 {array} CalendarEvent
// @Router   /api/activities/calendar [get]
func (c *ActivityController) GetCalendarEvents(ctx *fiber.Ctx) error {
	startStr := ctx.Query("start")
	endStr := ctx.Query("end")

	if startStr == "" || endStr == "" {
		return api.BadRequest(ctx, "Start and End dates are required")
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return api.BadRequest(ctx, "Invalid start date format (YYYY-MM-DD)")
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return api.BadRequest(ctx, "Invalid end date format (YYYY-MM-DD)")
	}

	end = end.Add(24 * time.Hour)

	events, err := c.ActivityService.GetCalendarEvents(ctx.UserContext(), start, end)
	if err != nil {
		return api.Fail(ctx, err)
	}

	return ctx.JSON(events)
}
