package contact

import (
	"pocket-crm/internal/common/api"
	"pocket-crm/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactController struct {
	Service ContactService
}

func NewContactController(service ContactService) *ContactController {
	return &ContactController{Service: service}
}

// ListContacts godoc
// @Summary  List contacts
// @Tags     contacts
// @Produce  json
// @Param    page   query int    false "Page"
// @Param    limit  query int    false "Page size"
// @Param    search query string false "Matches name, mobile, email or company"
// @Router   /api/contacts [get]
func (ctrl *ContactController) ListContacts(c *fiber.Ctx) error {
	page := models.Page{
		Page:   int64(c.QueryInt("page", 1)),
		Limit:  int64(c.QueryInt("limit", 20)),
		Search: c.Query("search"),
	}
	result, err := ctrl.Service.ListContacts(c.UserContext(), page)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(result)
}

// CreateContact godoc
// @Summary  Create a contact
// @Tags     contacts
// @Accept   json
// @Produce  json
// @Param    contact body Contact true "Contact"
// @Success  201 {object} Contact
// @Router   /api/contacts [post]
func (ctrl *ContactController) CreateContact(c *fiber.Ctx) error {
	var contact Contact
	if err := c.BodyParser(&contact); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	if err := ctrl.Service.CreateContact(c.UserContext(), &contact); err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// GetContact godoc
// @Summary  Get a contact
// @Tags     contacts
// @Param    id path string true "Contact ID"
// @Router   /api/contacts/{id} [get]
func (ctrl *ContactController) GetContact(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	contact, err := ctrl.Service.GetContact(c.UserContext(), id)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(contact)
}

// UpdateContact godoc
// @Summary  Replace a contact
// @Tags     contacts
// @Param    id path string true "Contact ID"
// @Router   /api/contacts/{id} [put]
func (ctrl *ContactController) UpdateContact(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	var contact Contact
	if err := c.BodyParser(&contact); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	updated, err := ctrl.Service.UpdateContact(c.UserContext(), id, &contact)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(updated)
}

// DeleteContact godoc
// @Summary  Delete a contact
// @Tags     contacts
// @Param    id path string true "Contact ID"
// @Router   /api/contacts/{id} [delete]
func (ctrl *ContactController) DeleteContact(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	if err := ctrl.Service.DeleteContact(c.UserContext(), id); err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Contact deleted successfully"})
}
