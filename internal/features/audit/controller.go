package audit

import (
	"strconv"

	"pocket-crm/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListLogs godoc
// @Summary  List audit log entries
// @Tags     audit
// @Produce  json
// @Param    module     query string false "Module"
// @Param    record_id  query string false "Record ID"
// @Param    page       query int    false "Page"
// @Param    limit      query int    false "Limit"
// @Success  200 {array} models.AuditLog
// @Router   /api/audit-logs [get]
func (ctrl *AuditController) ListLogs(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filters := make(map[string]interface{})
	if module := c.Query("module"); module != "" {
		filters["module"] = module
	}
	if recordID := c.Query("record_id"); recordID != "" {
		filters["record_id"] = recordID
	}

	logs, err := ctrl.Service.ListLogs(c.UserContext(), filters, page, limit)
	if err != nil {
		return api.Fail(c, err)
	}

	return c.JSON(logs)
}
