package aiValidator

import (
	"hotelaudit/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AnalyzePhoto validator middleware
func AnalyzePhoto() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ImageData string `json:"imageData"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ImageData) == "" {
			errors["imageData"] = "Image data is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// SuggestScore validator middleware
func SuggestScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ItemDescription string `json:"itemDescription"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ItemDescription) == "" {
			errors["itemDescription"] = "Item description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
