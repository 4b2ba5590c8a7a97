package auditController

import (
	"encoding/json"
	"errors"
	"hotelaudit/database"
	"hotelaudit/middleware"
	"hotelaudit/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type createAuditItemRequest struct {
	Category string   `json:"category"`
	Item     string   `json:"item"`
	Score    *float64 `json:"score"`
	Comments string   `json:"comments"`
	Photos   []string `json:"photos"`
}

// updateAuditItemRequest allow-lists the human-writable item fields. The AI
// fields (ai_suggested_score, ai_analysis) are only written by the AI flows.
type updateAuditItemRequest struct {
	Score    *float64  `json:"score"`
	Comments *string   `json:"comments"`
	Photos   *[]string `json:"photos"`
	Status   *string   `json:"status"`
}

// ListAuditItems returns all items of one audit, in stored order.
func ListAuditItems(c *fiber.Ctx) error {
	auditID, err := c.ParamsInt("auditId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid audit id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Audit{}, auditID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Audit not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load audit!", nil)
	}

	var items []models.AuditItem
	if err := db.Where("audit_id = ?", auditID).Order("id asc").Find(&items).Error; err != nil {
		log.Printf("Error listing items for audit %d: %v", auditID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list audit items!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit items retrieved successfully.", items)
}

// CreateAuditItem adds a checklist item to an audit.
func CreateAuditItem(c *fiber.Ctx) error {
	auditID, err := c.ParamsInt("auditId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid audit id!", nil)
	}

	var reqData createAuditItemRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Audit{}, auditID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Audit not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load audit!", nil)
	}

	item := models.AuditItem{
		AuditID:  uint(auditID),
		Category: reqData.Category,
		Item:     reqData.Item,
		Score:    reqData.Score,
		Comments: reqData.Comments,
		Status:   "pending",
	}

	if reqData.Photos != nil {
		blob, err := json.Marshal(reqData.Photos)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid photos payload!", nil)
		}
		item.Photos = datatypes.JSON(blob)
	}

	if err := db.Create(&item).Error; err != nil {
		log.Printf("Error creating item for audit %d: %v", auditID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create audit item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Audit item created successfully.", item)
}

// UpdateAuditItem applies allow-listed updates to one item.
func UpdateAuditItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid item id!", nil)
	}

	var reqData updateAuditItemRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var item models.AuditItem
	if err := db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Audit item not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load audit item!", nil)
	}

	updates := map[string]interface{}{}

	if reqData.Score != nil {
		updates["score"] = *reqData.Score
	}
	if reqData.Comments != nil {
		updates["comments"] = *reqData.Comments
	}
	if reqData.Status != nil {
		updates["status"] = *reqData.Status
	}
	if reqData.Photos != nil {
		blob, err := json.Marshal(*reqData.Photos)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid photos payload!", nil)
		}
		updates["photos"] = datatypes.JSON(blob)
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Nothing to update.", item)
	}

	if err := db.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("Error updating item %d: %v", item.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update audit item!", nil)
	}

	var updated models.AuditItem
	if err := db.First(&updated, item.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reload audit item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit item updated successfully.", updated)
}
