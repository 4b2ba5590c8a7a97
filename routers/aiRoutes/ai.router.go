package aiRoutes

import (
	aiControllers "hotelaudit/controllers/aiControllers"
	"hotelaudit/middleware"
	aiValidators "hotelaudit/validators/ai"

	"github.com/gofiber/fiber/v2"
)

func SetupAIRoutes(app *fiber.App) {
	aiGroup := app.Group("/ai")

	aiGroup.Post("/analyze-photo", aiValidators.AnalyzePhoto(), middleware.JWTMiddleware, aiControllers.AnalyzePhoto)
	aiGroup.Post("/suggest-score", aiValidators.SuggestScore(), middleware.JWTMiddleware, aiControllers.SuggestScore)
	aiGroup.Post("/generate-report/:auditId", middleware.JWTMiddleware, aiControllers.GenerateReport)
	aiGroup.Post("/update-item-ai/:itemId", middleware.JWTMiddleware, aiControllers.UpdateItemAI)
	aiGroup.Get("/insights/:auditId", middleware.JWTMiddleware, aiControllers.GetAuditInsights)
}
