package search

import (
	"pocket-crm/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type SearchController struct {
	Service SearchService
}

func NewSearchController(service SearchService) *SearchController {
	return &SearchController{
		Service: service,
	}
}

// GlobalSearch godoc
// @Summary  Search contacts, leads and deals
// @Tags     search
// @Produce  json
// @Param    q query string true "At least two characters"
// @Success  200 {array} SearchResult
// @Router   /api/search [get]
func (ctrl *SearchController) GlobalSearch(c *fiber.Ctx) error {
	results, err := ctrl.Service.GlobalSearch(c.UserContext(), c.Query("q"))
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(results)
}
