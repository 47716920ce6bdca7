package userRoutes

import (
	userControllers "learnsphere/controllers/userControllers"
	"learnsphere/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Get("/rewards", middleware.JWTMiddleware, userControllers.GetRewards)
}
