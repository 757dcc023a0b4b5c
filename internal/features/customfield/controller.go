package customfield

import (
	"pocket-crm/internal/common/api"
	"pocket-crm/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomFieldController struct {
	Service CustomFieldService
}

func NewCustomFieldController(service CustomFieldService) *CustomFieldController {
	return &CustomFieldController{Service: service}
}

func moduleQuery(c *fiber.Ctx) (models.Module, error) {
	return models.ParseModule(c.Query("module"))
}

// ListCustomFields godoc
// @Summary  List custom fields of a module
// @Tags     custom-fields
// @Produce  json
// @Param    module query string true "Contact, Lead or Deal"
// @Success  200 {array} CustomField
// @Router   /api/custom-fields [get]
func (ctrl *CustomFieldController) ListCustomFields(c *fiber.Ctx) error {
	module, err := moduleQuery(c)
	if err != nil {
		return api.Fail(c, err)
	}
	fields, err := ctrl.Service.FieldsBySlot(c.UserContext(), module)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fields)
}

// NextColumn godoc
// @Summary  Preview the slot the next custom field of a module would get
// @Tags     custom-fields
// @Param    module query string true "Contact, Lead or Deal"
// @Router   /api/custom-fields/next-column [get]
func (ctrl *CustomFieldController) NextColumn(c *fiber.Ctx) error {
	module, err := moduleQuery(c)
	if err != nil {
		return api.Fail(c, err)
	}
	column, err := ctrl.Service.GetNextAvailableColumnName(c.UserContext(), module)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fiber.Map{"column_name": column})
}

// Labels godoc
// @Summary  Map each bound slot of a module to its field name
// @Tags     custom-fields
// @Param    module query string true "Contact, Lead or Deal"
// @Router   /api/custom-fields/labels [get]
func (ctrl *CustomFieldController) Labels(c *fiber.Ctx) error {
	module, err := moduleQuery(c)
	if err != nil {
		return api.Fail(c, err)
	}
	labels, err := ctrl.Service.Labels(c.UserContext(), module)
	if err != nil {
		return api.Fail(c, err)
	}
	out := make(map[string]string, len(labels))
	for slot, name := range labels {
		out[slot.Name()] = name
	}
	return c.JSON(out)
}

// CreateCustomField godoc
// @Summary  Define a custom field; a free slot is bound automatically
// @Tags     custom-fields
// @Accept   json
// @Produce  json
// @Param    field body CustomField true "Field definition"
// @Success  201 {object} CustomField
// @Failure  409 {object} map[string]string "capacity exceeded"
// @Router   /api/custom-fields [post]
func (ctrl *CustomFieldController) CreateCustomField(c *fiber.Ctx) error {
	var field CustomField
	if err := c.BodyParser(&field); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	if err := ctrl.Service.CreateCustomField(c.UserContext(), &field); err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(field)
}

// GetCustomField godoc
// @Summary  Get a custom field
// @Tags     custom-fields
// @Param    id path string true "Field ID"
// @Router   /api/custom-fields/{id} [get]
func (ctrl *CustomFieldController) GetCustomField(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	field, err := ctrl.Service.GetCustomField(c.UserContext(), id)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(field)
}

// UpdateCustomField godoc
// @Summary  Rename a custom field or replace its options
// @Tags     custom-fields
// @Param    id path string true "Field ID"
// @Router   /api/custom-fields/{id} [put]
func (ctrl *CustomFieldController) UpdateCustomField(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	var update CustomField
	if err := c.BodyParser(&update); err != nil {
		return api.BadRequest(c, "Invalid request body")
	}
	field, err := ctrl.Service.UpdateCustomField(c.UserContext(), id, &update)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(field)
}

// DeleteCustomField godoc
// @Summary  Delete a custom field and clear its slot on every record
// @Tags     custom-fields
// @Param    id path string true "Field ID"
// @Router   /api/custom-fields/{id} [delete]
func (ctrl *CustomFieldController) DeleteCustomField(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	cleaned, err := ctrl.Service.DeleteCustomField(c.UserContext(), id)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message":         "Custom field deleted successfully",
		"records_cleaned": cleaned,
	})
}
