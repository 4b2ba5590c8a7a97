package userRoutes

import (
	userControllers "hotelaudit/controllers/userControllers"
	"hotelaudit/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Get("/", middleware.JWTMiddleware, userControllers.ListUsers)
	userGroup.Get("/:userId", middleware.JWTMiddleware, userControllers.GetUser)
}
