package export

import (
	"fmt"
	"time"

	"pocket-crm/internal/common/api"
	"pocket-crm/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	Service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{Service: service}
}

// ExportModule godoc
// @Summary  Download every record of a module as a spreadsheet
// @Tags     export
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param    module path string true "Contact, Lead or Deal"
// @Router   /api/export/{module} [get]
func (ctrl *ExportController) ExportModule(c *fiber.Ctx) error {
	module, err := models.ParseModule(c.Params("module"))
	if err != nil {
		return api.BadRequest(c, "module must be one of Contact, Lead, Deal")
	}

	f, err := ctrl.Service.Export(c.UserContext(), module)
	if err != nil {
		return api.Fail(c, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return api.Fail(c, err)
	}

	name := fmt.Sprintf("%ss-%s.xlsx", module, time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(buf.Bytes())
}

// ImportContacts godoc
// @Summary  Create contacts from a csv or xlsx file
// @Tags     export
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "Spreadsheet with a header row"
// @Success  200 {object} ImportResult
// @Router   /api/import/contacts [post]
func (ctrl *ExportController) ImportContacts(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return api.BadRequest(c, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return api.Fail(c, err)
	}
	defer file.Close()

	result, err := ctrl.Service.ImportContacts(c.UserContext(), file, header.Filename)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(result)
}
