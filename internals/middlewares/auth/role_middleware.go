package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles validasi role dari Locals + custom error message per fitur
func RequireRoles(customForbiddenMessage string, allowedRoles ...string) fiber.Handler {
	allowSet := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowSet[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		role = strings.ToLower(strings.TrimSpace(role))
		if !ok || role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		if _, allowed := allowSet[role]; !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": customForbiddenMessage,
			})
		}
		return c.Next()
	}
}
