package notification

import (
	"pocket-crm/internal/common/api"
	"pocket-crm/internal/common/models"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationController struct {
	service NotificationService
	hub     *Hub
}

func NewNotificationController(service NotificationService, hub *Hub) *NotificationController {
	return &NotificationController{
		service: service,
		hub:     hub,
	}
}

// List godoc
// @Summary  List notifications, newest first
// @Tags     notifications
// @Param    page  query int false "Page"
// @Param    limit query int false "Page size"
// @Router   /api/notifications [get]
func (c *NotificationController) List(ctx *fiber.Ctx) error {
	page := models.Page{
		Page:  int64(ctx.QueryInt("page", 1)),
		Limit: int64(ctx.QueryInt("limit", 10)),
	}
	result, err := c.service.List(ctx.UserContext(), page)
	if err != nil {
		return api.Fail(ctx, err)
	}
	return ctx.JSON(result)
}

// GetUnreadCount godoc
// @Summary  Number of unread notifications
// @Tags     notifications
// @Router   /api/notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *fiber.Ctx) error {
	count, err := c.service.UnreadCount(ctx.UserContext())
	if err != nil {
		return api.Fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"count": count})
}

// MarkAsRead godoc
// @Summary  Mark one notification read
// @Tags     notifications
// @Param    id path string true "Notification ID"
// @Router   /api/notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(ctx.Params("id"))
	if err != nil {
		return api.BadRequest(ctx, "Invalid ID")
	}
	if err := c.service.MarkAsRead(ctx.UserContext(), id); err != nil {
		return api.Fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// MarkAllAsRead godoc
// @Summary  Mark every notification read
// @Tags     notifications
// @Router   /api/notifications/mark-all-read [post]
func (c *NotificationController) MarkAllAsRead(ctx *fiber.Ctx) error {
	n, err := c.service.MarkAllAsRead(ctx.UserContext())
	if err != nil {
		return api.Fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "updated": n})
}

// Upgrade rejects plain HTTP requests on the websocket route.
func (c *NotificationController) Upgrade(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream keeps a client registered with the hub until it disconnects.
// Incoming messages are ignored.
func (c *NotificationController) Stream(conn *websocket.Conn) {
	c.hub.Register(conn)
	defer c.hub.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
