package userController

import (
	"learnsphere/badge"
	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the current user's profile
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// GetRewards returns the user's points, current badge, and progress towards
// the next badge. The badge is derived from the live point total, not read
// from the stored column, so the two can never disagree here.
func GetRewards(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	current := badge.ForPoints(user.TotalPoints)

	response := fiber.Map{
		"total_points":     user.TotalPoints,
		"badge":            current,
		"next_badge":       badge.Next(user.TotalPoints),
		"progress_to_next": badge.ProgressToNext(user.TotalPoints),
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rewards fetched successfully!", response)
}
