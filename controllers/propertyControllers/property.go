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

type createPropertyRequest struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	HotelGroupID uint   `json:"hotelGroupId"`
	ManagerName  string `json:"managerName"`
	ManagerEmail string `json:"managerEmail"`
}

// updatePropertyRequest allow-lists writable property fields. OverallScore
// and LastAuditDate are owned by the aggregate scheduler, not the API.
type updatePropertyRequest struct {
	Name         *string `json:"name"`
	Location     *string `json:"location"`
	ManagerName  *string `json:"managerName"`
	ManagerEmail *string `json:"managerEmail"`
	Status       *string `json:"status"`
}

// ListProperties returns properties, optionally filtered by hotel group.
func ListProperties(c *fiber.Ctx) error {
	query := database.Database.Db.Model(&models.Property{})

	if groupID := c.QueryInt("hotelGroupId"); groupID > 0 {
		query = query.Where("hotel_group_id = ?", groupID)
	}

	var properties []models.Property
	if err := query.Order("id asc").Find(&properties).Error; err != nil {
		log.Printf("Error listing properties: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list properties!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Properties retrieved successfully.", properties)
}

// GetProperty returns one property by id.
func GetProperty(c *fiber.Ctx) error {
	propertyID, err := c.ParamsInt("propertyId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid property id!", nil)
	}

	var property models.Property
	if err := database.Database.Db.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Property not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load property!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Property retrieved successfully.", property)
}

// CreateProperty adds a property under an existing hotel group.
func CreateProperty(c *fiber.Ctx) error {
	var reqData createPropertyRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Name == "" || reqData.Location == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Name and location are required!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.HotelGroup{}, reqData.HotelGroupID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Hotel group not found!", nil)
	}

	property := models.Property{
		Name:         reqData.Name,
		Location:     reqData.Location,
		HotelGroupID: reqData.HotelGroupID,
		ManagerName:  reqData.ManagerName,
		ManagerEmail: reqData.ManagerEmail,
		Status:       "active",
	}

	if err := db.Create(&property).Error; err != nil {
		log.Printf("Error creating property: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create property!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Property created successfully.", property)
}

// UpdateProperty applies allow-listed updates to a property.
func UpdateProperty(c *fiber.Ctx) error {
	propertyID, err := c.ParamsInt("propertyId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid property id!", nil)
	}

	var reqData updatePropertyRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var property models.Property
	if err := db.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Property not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load property!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Location != nil {
		updates["location"] = *reqData.Location
	}
	if reqData.ManagerName != nil {
		updates["manager_name"] = *reqData.ManagerName
	}
	if reqData.ManagerEmail != nil {
		updates["manager_email"] = *reqData.ManagerEmail
	}
	if reqData.Status != nil {
		updates["status"] = *reqData.Status
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Nothing to update.", property)
	}

	if err := db.Model(&property).Updates(updates).Error; err != nil {
		log.Printf("Error updating property %d: %v", property.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update property!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Property updated successfully.", property)
}
