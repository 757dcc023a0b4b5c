package deal

import (
	"pocket-crm/internal/common/api"
	"pocket-crm/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DealController struct {
	Service DealService
}

func NewDealController(service DealService) *DealController {
	return &DealController{Service: service}
}

// ListDeals godoc
// @Summary  List deals
// @Tags     deals
// @Param    page   query int    false "Page"
// @Param    limit  query int    false "Page size"
// @Param    search query string false "Matches title or description"
// @Param    stage  query string false "Exact stage"
// @Router   /api/deals [get]
func (ctrl *DealController) ListDeals(c *fiber.Ctx) error {
	page := models.Page{
		Page:   int64(c.QueryInt("page", 1)),
		Limit:  int64(c.QueryInt("limit", 20)),
		Search: c.Query("search"),
	}
	result, err := ctrl.Service.ListDeals(c.UserContext(), page, c.Query("stage"))
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(result)
}

// Options godoc
// @Summary  Suggested deal stages
// @Tags     deals
// @Router   /api/deals/options [get]
func (ctrl *DealController) Options(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stages": Stages})
}

// CreateDeal godoc
// @Summary  Create a deal
// @Tags     deals
// @Accept   json
// @Param    deal body Deal true "Deal"
// @Success  201 {object} Deal
// @Router   /api/deals [post]
func (ctrl *DealController) CreateDeal(c *fiber.Ctx) error {
	var deal Deal
	if err := c.BodyParser(&deal); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	if err := ctrl.Service.CreateDeal(c.UserContext(), &deal); err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(deal)
}

// GetDeal godoc
// @Summary  Get a deal
// @Tags     deals
// @Param    id path string true "Deal ID"
// @Router   /api/deals/{id} [get]
func (ctrl *DealController) GetDeal(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	deal, err := ctrl.Service.GetDeal(c.UserContext(), id)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(deal)
}

// UpdateDeal godoc
// @Summary  Replace a deal
// @Tags     deals
// @Param    id path string true "Deal ID"
// @Router   /api/deals/{id} [put]
func (ctrl *DealController) UpdateDeal(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	var deal Deal
	if err := c.BodyParser(&deal); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	updated, err := ctrl.Service.UpdateDeal(c.UserContext(), id, &deal)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(updated)
}

// DeleteDeal godoc
// @Summary  Delete a deal
// @Tags     deals
// @Param    id path string true "Deal ID"
// @Router   /api/deals/{id} [delete]
func (ctrl *DealController) DeleteDeal(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	if err := ctrl.Service.DeleteDeal(c.UserContext(), id); err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Deal deleted successfully"})
}
