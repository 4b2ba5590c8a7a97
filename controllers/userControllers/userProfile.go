package userController

import (
	"hotelaudit/database"
	"hotelaudit/middleware"
	"hotelaudit/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ListUsers returns all users, optionally filtered by role. Admin only.
func ListUsers(c *fiber.Ctx) error {
	role, _ := c.Locals("userRole").(string)
	if role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "insufficient permissions", nil)
	}

	db := database.Database.Db
	query := db.Model(&models.User{})

	if roleFilter := c.Query("role"); roleFilter != "" {
		query = query.Where("role = ?", roleFilter)
	}

	var users []models.User
	if err := query.Order("id asc").Find(&users).Error; err != nil {
		log.Printf("Error listing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users retrieved successfully.", users)
}

// GetUser returns one user by id. Admin only.
func GetUser(c *fiber.Ctx) error {
	role, _ := c.Locals("userRole").(string)
	if role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "insufficient permissions", nil)
	}

	userID, err := c.ParamsInt("userId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User retrieved successfully.", user)
}
