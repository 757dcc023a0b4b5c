package lead

import (
	"errors"

	"pocket-crm/internal/common/api"
	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/deal"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeadController struct {
	Service LeadService
}

func NewLeadController(service LeadService) *LeadController {
	return &LeadController{Service: service}
}

// ListLeads godoc
// @Summary  List leads
// @Tags     leads
// @Param    page   query int    false "Page"
// @Param    limit  query int    false "Page size"
// @Param    search query string false "Matches name, email, mobile or whatsapp"
// @Param    status query string false "Exact status"
// @Router   /api/leads [get]
func (ctrl *LeadController) ListLeads(c *fiber.Ctx) error {
	page := models.Page{
		Page:   int64(c.QueryInt("page", 1)),
		Limit:  int64(c.QueryInt("limit", 20)),
		Search: c.Query("search"),
	}
	result, err := ctrl.Service.ListLeads(c.UserContext(), page, c.Query("status"))
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(result)
}

// Options godoc
// @Summary  Suggested lead statuses and sources
// @Tags     leads
// @Router   /api/leads/options [get]
func (ctrl *LeadController) Options(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"statuses":    Statuses,
		"sources":     Sources,
		"deal_stages": deal.Stages,
	})
}

// CreateLead godoc
// @Summary  Create a lead
// @Tags     leads
// @Accept   json
// @Param    lead body Lead true "Lead"
// @Success  201 {object} Lead
// @Router   /api/leads [post]
func (ctrl *LeadController) CreateLead(c *fiber.Ctx) error {
	var lead Lead
	if err := c.BodyParser(&lead); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	if err := ctrl.Service.CreateLead(c.UserContext(), &lead); err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lead)
}

// GetLead godoc
// @Summary  Get a lead
// @Tags     leads
// @Param    id path string true "Lead ID"
// @Router   /api/leads/{id} [get]
func (ctrl *LeadController) GetLead(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	lead, err := ctrl.Service.GetLead(c.UserContext(), id)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(lead)
}

// UpdateLead godoc
// @Summary  Replace a lead
// @Tags     leads
// @Param    id path string true "Lead ID"
// @Router   /api/leads/{id} [put]
func (ctrl *LeadController) UpdateLead(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	var lead Lead
	if err := c.BodyParser(&lead); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	updated, err := ctrl.Service.UpdateLead(c.UserContext(), id, &lead)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(updated)
}

// DeleteLead godoc
// @Summary  Delete a lead
// @Tags     leads
// @Param    id path string true "Lead ID"
// @Router   /api/leads/{id} [delete]
func (ctrl *LeadController) DeleteLead(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	if err := ctrl.Service.DeleteLead(c.UserContext(), id); err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lead deleted successfully"})
}

// ConvertLead godoc
// @Summary  Convert a lead into a deal, optionally creating a contact
// @Tags     leads
// @Accept   json
// @Produce  json
// @Param    id      path string         true "Lead ID"
// @Param    request body ConvertRequest true "Deal fields"
// @Success  201 {object} ConversionResult
// @Failure  409 {object} map[string]string "already converted"
// @Router   /api/leads/{id}/convert [post]
func (ctrl *LeadController) ConvertLead(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	var req ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	result, err := ctrl.Service.ConvertLeadToDeal(c.UserContext(), id, req)
	if err != nil {
		status := api.StatusFor(err)
		body := fiber.Map{"error": err.Error()}
		var ce *ConversionError
		if errors.As(err, &ce) {
			body["stage"] = ce.Stage
		}
		return c.Status(status).JSON(body)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
