package auditController

import (
	"encoding/json"
	"errors"
	"hotelaudit/database"
	"hotelaudit/middleware"
	"hotelaudit/models"
	"hotelaudit/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type createAuditRequest struct {
	PropertyID uint  `json:"propertyId"`
	AuditorID  uint  `json:"auditorId"`
	ReviewerID *uint `json:"reviewerId"`
}

// updateAuditRequest is the explicit allow-list of writable audit fields.
// Protected fields (id, created_at) and AI-owned blobs are not bindable here.
type updateAuditRequest struct {
	Status           *string         `json:"status"`
	ReviewerID       *uint           `json:"reviewerId"`
	OverallScore     *float64        `json:"overallScore"`
	CleanlinessScore *float64        `json:"cleanlinessScore"`
	BrandingScore    *float64        `json:"brandingScore"`
	OperationalScore *float64        `json:"operationalScore"`
	ComplianceZone   *string         `json:"complianceZone"`
	Findings         json.RawMessage `json:"findings"`
}

func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, errors.New("user id missing from context")
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAudits returns audits filtered by status, auditor, reviewer or property.
func ListAudits(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.Audit{}).Preload("Property").Preload("Auditor").Preload("Reviewer")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if auditorID := c.QueryInt("auditorId"); auditorID > 0 {
		query = query.Where("auditor_id = ?", auditorID)
	}
	if reviewerID := c.QueryInt("reviewerId"); reviewerID > 0 {
		query = query.Where("reviewer_id = ?", reviewerID)
	}
	if propertyID := c.QueryInt("propertyId"); propertyID > 0 {
		query = query.Where("property_id = ?", propertyID)
	}

	var audits []models.Audit
	if err := query.Order("created_at desc").Find(&audits).Error; err != nil {
		log.Printf("Error listing audits: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list audits!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audits retrieved successfully.", audits)
}

// GetAudit returns one audit with its property, users and items.
func GetAudit(c *fiber.Ctx) error {
	auditID, err := c.ParamsInt("auditId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid audit id!", nil)
	}

	var audit models.Audit
	err = database.Database.Db.
		Preload("Property").
		Preload("Auditor").
		Preload("Reviewer").
		Preload("Items").
		First(&audit, auditID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Audit not found!", nil)
		}
		log.Printf("Error loading audit %d: %v", auditID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load audit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit retrieved successfully.", audit)
}

// CreateAudit schedules a new audit against an existing property.
func CreateAudit(c *fiber.Ctx) error {
	var reqData createAuditRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	actor, err := currentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Property{}, reqData.PropertyID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Property not found!", nil)
	}
	if err := db.First(&models.User{}, reqData.AuditorID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Auditor not found!", nil)
	}

	if reqData.ReviewerID != nil && !middleware.CanAssignReviewer(actor) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins and reviewers can assign a reviewer!", nil)
	}

	audit := models.Audit{
		PropertyID: reqData.PropertyID,
		AuditorID:  reqData.AuditorID,
		ReviewerID: reqData.ReviewerID,
		Status:     models.StatusScheduled,
	}

	if err := db.Create(&audit).Error; err != nil {
		log.Printf("Error creating audit: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create audit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Audit scheduled successfully.", audit)
}

// UpdateAudit applies allow-listed field updates and status transitions.
func UpdateAudit(c *fiber.Ctx) error {
	auditID, err := c.ParamsInt("auditId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid audit id!", nil)
	}

	var reqData updateAuditRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	actor, err := currentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var audit models.Audit
	if err := db.First(&audit, auditID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Audit not found!", nil)
		}
		log.Printf("Error loading audit %d: %v", auditID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load audit!", nil)
	}

	updates := map[string]interface{}{}
	justSubmitted := false

	if reqData.ReviewerID != nil {
		if !middleware.CanAssignReviewer(actor) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins and reviewers can assign a reviewer!", nil)
		}
		if err := db.First(&models.User{}, *reqData.ReviewerID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reviewer not found!", nil)
		}
		updates["reviewer_id"] = *reqData.ReviewerID
	}

	if reqData.Status != nil {
		wasSubmitted := audit.SubmittedAt != nil
		wasReviewed := audit.ReviewedAt != nil

		if err := audit.ApplyStatus(*reqData.Status, time.Now().UTC()); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}

		updates["status"] = audit.Status
		if !wasSubmitted && audit.SubmittedAt != nil {
			updates["submitted_at"] = audit.SubmittedAt
			justSubmitted = true
		}
		if !wasReviewed && audit.ReviewedAt != nil {
			updates["reviewed_at"] = audit.ReviewedAt
		}
	}

	if reqData.OverallScore != nil {
		updates["overall_score"] = *reqData.OverallScore
	}
	if reqData.CleanlinessScore != nil {
		updates["cleanliness_score"] = *reqData.CleanlinessScore
	}
	if reqData.BrandingScore != nil {
		updates["branding_score"] = *reqData.BrandingScore
	}
	if reqData.OperationalScore != nil {
		updates["operational_score"] = *reqData.OperationalScore
	}
	if reqData.ComplianceZone != nil {
		updates["compliance_zone"] = *reqData.ComplianceZone
	}
	if len(reqData.Findings) > 0 {
		updates["findings"] = datatypes.JSON(reqData.Findings)
	}

	// First submission without precomputed scores: aggregate from the items.
	if justSubmitted && audit.OverallScore == nil && reqData.OverallScore == nil {
		applySubmissionScores(db, &audit, updates, len(reqData.Findings) > 0)
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Nothing to update.", audit)
	}

	if err := db.Model(&audit).Updates(updates).Error; err != nil {
		log.Printf("Error updating audit %d: %v", audit.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update audit!", nil)
	}

	var updated models.Audit
	if err := db.Preload("Property").Preload("Auditor").Preload("Reviewer").First(&updated, audit.ID).Error; err != nil {
		log.Printf("Error reloading audit %d: %v", audit.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reload audit!", nil)
	}

	if justSubmitted {
		notifyReviewer(&updated)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit updated successfully.", updated)
}

// applySubmissionScores fills the four score fields, compliance zone and
// findings blob from the audit's items when the caller did not supply them.
func applySubmissionScores(db *gorm.DB, audit *models.Audit, updates map[string]interface{}, findingsProvided bool) {
	var items []models.AuditItem
	if err := db.Where("audit_id = ?", audit.ID).Order("id asc").Find(&items).Error; err != nil {
		log.Printf("Error loading items for audit %d: %v", audit.ID, err)
		return
	}

	overall, cleanliness, branding, operational := utils.ComputeAuditScores(items)
	if overall == nil {
		return
	}

	updates["overall_score"] = *overall
	updates["compliance_zone"] = utils.ComplianceZoneFor(*overall)
	if cleanliness != nil {
		updates["cleanliness_score"] = *cleanliness
	}
	if branding != nil {
		updates["branding_score"] = *branding
	}
	if operational != nil {
		updates["operational_score"] = *operational
	}

	if !findingsProvided {
		if blob, err := json.Marshal(utils.CollectFindings(items)); err == nil {
			updates["findings"] = datatypes.JSON(blob)
		}
	}
}

// notifyReviewer emails the assigned reviewer about a fresh submission, off
// the request path.
func notifyReviewer(audit *models.Audit) {
	if audit.ReviewerID == nil {
		return
	}

	go func(reviewerID uint, propertyName string, auditID uint) {
		var reviewer models.User
		if err := database.Database.Db.First(&reviewer, reviewerID).Error; err != nil {
			log.Printf("Error loading reviewer %d: %v", reviewerID, err)
			return
		}
		if reviewer.Email == "" {
			return
		}
		utils.SendAuditSubmittedEmail(reviewer.Email, reviewer.Name, propertyName, auditID)
	}(*audit.ReviewerID, audit.Property.Name, audit.ID)
}
