package propertyRoutes

import (
	propertyControllers "hotelaudit/controllers/propertyControllers"
	"hotelaudit/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupPropertyRoutes(app *fiber.App) {
	groupRoutes := app.Group("/hotel-groups")

	groupRoutes.Get("/", middleware.JWTMiddleware, propertyControllers.ListHotelGroups)
	groupRoutes.Post("/", middleware.JWTMiddleware, propertyControllers.CreateHotelGroup)
	groupRoutes.Put("/:groupId", middleware.JWTMiddleware, propertyControllers.UpdateHotelGroup)

	propertyGroup := app.Group("/properties")

	propertyGroup.Get("/", middleware.JWTMiddleware, propertyControllers.ListProperties)
	propertyGroup.Post("/", middleware.JWTMiddleware, propertyControllers.CreateProperty)
	propertyGroup.Get("/:propertyId", middleware.JWTMiddleware, propertyControllers.GetProperty)
	propertyGroup.Put("/:propertyId", middleware.JWTMiddleware, propertyControllers.UpdateProperty)
}
