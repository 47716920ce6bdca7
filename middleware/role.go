package middleware

import (
	"learnsphere/database"
	"learnsphere/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that checks the user's role against the
// allowed set. The role is read from the users table, not the token, so a
// role change takes effect without re-issuing tokens.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: User ID not found",
				"data":    nil,
			})
		}

		var user models.User
		err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status":  false,
					"message": "User not found!",
					"data":    nil,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  false,
				"message": "Server error while checking role!",
				"data":    nil,
			})
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				c.Locals("userRole", user.Role)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}
}
