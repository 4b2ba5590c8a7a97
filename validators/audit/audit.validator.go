package auditValidator

import (
	"hotelaudit/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidScore(score float64) bool {
	return score >= 0 && score <= 5
}

// CreateAudit validator middleware
func CreateAudit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PropertyID uint `json:"propertyId"`
			AuditorID  uint `json:"auditorId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.PropertyID == 0 {
			errors["propertyId"] = "Property id is required!"
		}
		if reqData.AuditorID == 0 {
			errors["auditorId"] = "Auditor id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// UpdateAudit validator middleware
func UpdateAudit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status           *string  `json:"status"`
			OverallScore     *float64 `json:"overallScore"`
			CleanlinessScore *float64 `json:"cleanlinessScore"`
			BrandingScore    *float64 `json:"brandingScore"`
			OperationalScore *float64 `json:"operationalScore"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Status != nil && strings.TrimSpace(*reqData.Status) == "" {
			errors["status"] = "Status must not be empty!"
		}
		if reqData.OverallScore != nil && !isValidScore(*reqData.OverallScore) {
			errors["overallScore"] = "Score must be between 0 and 5!"
		}
		if reqData.CleanlinessScore != nil && !isValidScore(*reqData.CleanlinessScore) {
			errors["cleanlinessScore"] = "Score must be between 0 and 5!"
		}
		if reqData.BrandingScore != nil && !isValidScore(*reqData.BrandingScore) {
			errors["brandingScore"] = "Score must be between 0 and 5!"
		}
		if reqData.OperationalScore != nil && !isValidScore(*reqData.OperationalScore) {
			errors["operationalScore"] = "Score must be between 0 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// CreateAuditItem validator middleware
func CreateAuditItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Category string   `json:"category"`
			Item     string   `json:"item"`
			Score    *float64 `json:"score"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Category) == "" {
			errors["category"] = "Category is required!"
		}
		if strings.TrimSpace(reqData.Item) == "" {
			errors["item"] = "Item name is required!"
		}
		if reqData.Score != nil && !isValidScore(*reqData.Score) {
			errors["score"] = "Score must be between 0 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// UpdateAuditItem validator middleware
func UpdateAuditItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Score *float64 `json:"score"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Score != nil && !isValidScore(*reqData.Score) {
			errors["score"] = "Score must be between 0 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
