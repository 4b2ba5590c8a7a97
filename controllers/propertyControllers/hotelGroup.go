package propertyController

import (
	"errors"
	"hotelaudit/database"
	"hotelaudit/middleware"
	"hotelaudit/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type createHotelGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateHotelGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListHotelGroups returns all hotel groups with their properties.
func ListHotelGroups(c *fiber.Ctx) error {
	var groups []models.HotelGroup
	if err := database.Database.Db.Preload("Properties").Order("id asc").Find(&groups).Error; err != nil {
		log.Printf("Error listing hotel groups: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list hotel groups!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hotel groups retrieved successfully.", groups)
}

// CreateHotelGroup adds a hotel group.
func CreateHotelGroup(c *fiber.Ctx) error {
	var reqData createHotelGroupRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Name is required!", nil)
	}

	group := models.HotelGroup{
		Name:        reqData.Name,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&group).Error; err != nil {
		log.Printf("Error creating hotel group: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create hotel group!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Hotel group created successfully.", group)
}

// UpdateHotelGroup applies allow-listed updates to a hotel group.
func UpdateHotelGroup(c *fiber.Ctx) error {
	groupID, err := c.ParamsInt("groupId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid hotel group id!", nil)
	}

	var reqData updateHotelGroupRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var group models.HotelGroup
	if err := db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Hotel group not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load hotel group!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Nothing to update.", group)
	}

	if err := db.Model(&group).Updates(updates).Error; err != nil {
		log.Printf("Error updating hotel group %d: %v", group.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update hotel group!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hotel group updated successfully.", group)
}
