package followup

import (
	"pocket-crm/internal/common/api"
	"pocket-crm/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FollowUpController struct {
	Service FollowUpService
}

func NewFollowUpController(service FollowUpService) *FollowUpController {
	return &FollowUpController{Service: service}
}

// ListFollowUps godoc
// @Summary  List follow-ups, optionally for one record
// @Tags     follow-ups
// @Param    module    query string false "Contact, Lead or Deal"
// @Param    record_id query string false "Referenced record"
// @Param    page      query int    false "Page"
// @Param    limit     query int    false "Page size"
// @Router   /api/follow-ups [get]
func (ctrl *FollowUpController) ListFollowUps(c *fiber.Ctx) error {
	if c.Query("module") != "" || c.Query("record_id") != "" {
		ref, err := models.NewRecordRef(c.Query("module"), c.Query("record_id"))
		if err != nil {
			return api.Fail(c, err)
		}
		items, err := ctrl.Service.ListByRecord(c.UserContext(), ref)
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(items)
	}

	page := models.Page{
		Page:   int64(c.QueryInt("page", 1)),
		Limit:  int64(c.QueryInt("limit", 20)),
		Search: c.Query("search"),
	}
	result, err := ctrl.Service.ListFollowUps(c.UserContext(), page)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(result)
}

// ListUpcoming godoc
// @Summary  Follow-ups due from now on, soonest first
// @Tags     follow-ups
// @Param    limit query int false "Max results"
// @Router   /api/follow-ups/upcoming [get]
func (ctrl *FollowUpController) ListUpcoming(c *fiber.Ctx) error {
	items, err := ctrl.Service.ListUpcoming(c.UserContext(), int64(c.QueryInt("limit", 20)))
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(items)
}

// Options godoc
// @Summary  Suggested follow-up types, priorities and stages
// @Tags     follow-ups
// @Router   /api/follow-ups/options [get]
func (ctrl *FollowUpController) Options(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"types":      Types,
		"priorities": Priorities,
		"stages":     Stages,
		"modules":    models.Modules(),
	})
}

// CreateFollowUp godoc
// @Summary  Create a follow-up and schedule its reminders
// @Tags     follow-ups
// @Accept   json
// @Param    follow_up body FollowUp true "Follow-up"
// @Router   /api/follow-ups [post]
func (ctrl *FollowUpController) CreateFollowUp(c *fiber.Ctx) error {
	var f FollowUp
	if err := c.BodyParser(&f); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	fires, err := ctrl.Service.CreateFollowUp(c.UserContext(), &f)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"follow_up": f,
		"reminders": fires,
	})
}

// GetFollowUp godoc
// @Summary  Get a follow-up
// @Tags     follow-ups
// @Param    id path string true "Follow-up ID"
// @Router   /api/follow-ups/{id} [get]
func (ctrl *FollowUpController) GetFollowUp(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	f, err := ctrl.Service.GetFollowUp(c.UserContext(), id)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(f)
}

// UpdateFollowUp godoc
// @Summary  Replace a follow-up and reschedule its reminders
// @Tags     follow-ups
// @Param    id path string true "Follow-up ID"
// @Router   /api/follow-ups/{id} [put]
func (ctrl *FollowUpController) UpdateFollowUp(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	var f FollowUp
	if err := c.BodyParser(&f); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	fires, err := ctrl.Service.UpdateFollowUp(c.UserContext(), id, &f)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fiber.Map{
		"follow_up": f,
		"reminders": fires,
	})
}

// DeleteFollowUp godoc
// @Summary  Delete a follow-up and cancel its reminders
// @Tags     follow-ups
// @Param    id path string true "Follow-up ID"
// @Router   /api/follow-ups/{id} [delete]
func (ctrl *FollowUpController) DeleteFollowUp(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	if err := ctrl.Service.DeleteFollowUp(c.UserContext(), id); err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Follow-up deleted successfully"})
}
