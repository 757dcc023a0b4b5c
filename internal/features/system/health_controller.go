package system

import (
	"context"
	"time"

	"pocket-crm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db      Pinger
	started time.Time
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db, started: time.Now()}
}

// Health godoc
// @Summary      Liveness and database reachability
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /api/health [get]
func (h *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	uptime := time.Since(h.started).Round(time.Second).String()
	if err := h.db.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": err.Error(),
			"uptime":   uptime,
		})
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "ok",
		"uptime":   uptime,
	})
}

// Me godoc
// @Summary      Current caller
// @Description  Returns the user id carried by the bearer token
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/me [get]
func (h *HealthController) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user_id": utils.ActorID(c.UserContext())})
}
