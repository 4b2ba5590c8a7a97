package auditRoutes

import (
	auditControllers "hotelaudit/controllers/auditControllers"
	"hotelaudit/middleware"
	auditValidators "hotelaudit/validators/audit"

	"github.com/gofiber/fiber/v2"
)

func SetupAuditRoutes(app *fiber.App) {
	auditGroup := app.Group("/audits")

	auditGroup.Get("/", middleware.JWTMiddleware, auditControllers.ListAudits)
	auditGroup.Post("/", auditValidators.CreateAudit(), middleware.JWTMiddleware, auditControllers.CreateAudit)

	// The item update route has no audit id, register it before /:auditId.
	auditGroup.Put("/items/:itemId", auditValidators.UpdateAuditItem(), middleware.JWTMiddleware, auditControllers.UpdateAuditItem)

	auditGroup.Get("/:auditId", middleware.JWTMiddleware, auditControllers.GetAudit)
	auditGroup.Put("/:auditId", auditValidators.UpdateAudit(), middleware.JWTMiddleware, auditControllers.UpdateAudit)
	auditGroup.Get("/:auditId/items", middleware.JWTMiddleware, auditControllers.ListAuditItems)
	auditGroup.Post("/:auditId/items", auditValidators.CreateAuditItem(), middleware.JWTMiddleware, auditControllers.CreateAuditItem)
}
