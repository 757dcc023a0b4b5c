package middleware

import (
	"context"

	"pocket-crm/internal/common/models"
	"pocket-crm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT tokens and injects user claims into context
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			// Inject dummy context for dev
			return withClaims(c, &utils.UserClaims{UserID: "dev-user"})
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		// Extract token from "Bearer <token>"
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := utils.ValidateToken(authHeader[7:])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		return withClaims(c, claims)
	}
}

func withClaims(c *fiber.Ctx, claims *utils.UserClaims) error {
	c.Locals(models.UserClaimsKey, claims)
	c.SetUserContext(context.WithValue(c.UserContext(), models.UserClaimsKey, claims))
	return c.Next()
}
