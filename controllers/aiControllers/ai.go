package aiController

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotelaudit/database"
	"hotelaudit/middleware"
	"hotelaudit/models"
	"hotelaudit/utils"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type analyzePhotoRequest struct {
	ImageData string `json:"imageData"`
	Context   string `json:"context"`
}

type suggestScoreRequest struct {
	ItemDescription string   `json:"itemDescription"`
	Photos          []string `json:"photos"`
	Comments        string   `json:"comments"`
}

// photoAnalysisEntry pairs one photo's analysis with its 1-based index label.
type photoAnalysisEntry struct {
	Label    string               `json:"label"`
	Analysis *utils.PhotoAnalysis `json:"analysis"`
}

// itemAIComposite is the blob persisted into AuditItem.AIAnalysis.
type itemAIComposite struct {
	ScoreSuggestion *utils.ScoreSuggestion `json:"scoreSuggestion"`
	PhotoAnalysis   []photoAnalysisEntry   `json:"photoAnalysis"`
}

// loadActor resolves the authenticated caller set by the JWT middleware.
func loadActor(c *fiber.Ctx) (*models.User, error) {
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

// aiFailure maps provider errors to a 500 with a descriptive message.
// Degraded-provider fallbacks never reach here, they are 200 responses.
func aiFailure(c *fiber.Ctx, message string, err error) error {
	var provErr *utils.AIProviderError
	if errors.As(err, &provErr) {
		log.Printf("[AI] %s: %v", message, provErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false,
			fmt.Sprintf("%s %v", message, provErr), nil)
	}
	log.Printf("[AI] %s: %v", message, err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, message, nil)
}

// AnalyzePhoto runs a single photo through the AI provider.
func AnalyzePhoto(c *fiber.Ctx) error {
	var reqData analyzePhotoRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	analysis, err := utils.AI.AnalyzePhoto(reqData.ImageData, reqData.Context)
	if err != nil {
		return aiFailure(c, "Failed to analyze photo!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Photo analyzed successfully.", analysis)
}

// SuggestScore returns an AI score suggestion for an ad-hoc item description.
func SuggestScore(c *fiber.Ctx) error {
	var reqData suggestScoreRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	suggestion, err := utils.AI.SuggestItemScore(reqData.ItemDescription, reqData.Photos, reqData.Comments)
	if err != nil {
		return aiFailure(c, "Failed to suggest score!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Score suggestion generated.", suggestion)
}

// GenerateReport runs the full report workflow: authorize, snapshot, report,
// conditional action plan, insights. The composite goes back to the caller
// immediately; persistence happens on the deferred queue.
func GenerateReport(c *fiber.Ctx) error {
	auditID, err := c.ParamsInt("auditId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid audit id!", nil)
	}
	includeActionPlan := c.QueryBool("includeActionPlan", true)

	actor, err := loadActor(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var audit models.Audit
	err = db.
		Preload("Property").
		Preload("Auditor").
		Preload("Reviewer").
		Preload("Items").
		First(&audit, auditID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Audit not found!", nil)
		}
		log.Printf("[AI] failed to load audit %d: %v", auditID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load audit!", nil)
	}

	if allowed, reason := middleware.CanRunAuditAI(actor, &audit); !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, reason, nil)
	}

	snapshot := utils.BuildAuditSnapshot(&audit)

	report, err := utils.AI.GenerateReport(snapshot)
	if err != nil {
		return aiFailure(c, "Failed to generate report!", err)
	}

	// Action plan only when the audit actually has findings.
	var plan *utils.ActionPlan
	if includeActionPlan && len(snapshot.Findings) > 0 {
		plan, err = utils.AI.GenerateActionPlan(snapshot.Findings, utils.DefaultPropertyClass)
		if err != nil {
			return aiFailure(c, "Failed to generate action plan!", err)
		}
	}

	insights, err := utils.AI.GenerateComplianceInsights(snapshot)
	if err != nil {
		return aiFailure(c, "Failed to generate insights!", err)
	}

	scheduleReportPersist(audit.ID, report, plan, insights)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit report generated successfully.", fiber.Map{
		"report":     report,
		"actionPlan": plan,
		"insights":   insights,
	})
}

// scheduleReportPersist writes the composite AI result back onto the audit
// after the response has been sent. The audit is re-loaded by id at execution
// time; a deleted audit makes the task a no-op.
func scheduleReportPersist(auditID uint, report *utils.AuditReport, plan *utils.ActionPlan, insights *utils.ComplianceInsights) {
	utils.Tasks.Enqueue(fmt.Sprintf("persist report for audit %d", auditID), func() error {
		db := database.Database.Db

		var audit models.Audit
		if err := db.First(&audit, auditID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		updates := map[string]interface{}{}

		reportBlob, err := json.Marshal(report)
		if err != nil {
			return err
		}
		updates["ai_report"] = datatypes.JSON(reportBlob)

		insightsBlob, err := json.Marshal(insights)
		if err != nil {
			return err
		}
		updates["ai_insights"] = datatypes.JSON(insightsBlob)

		if plan != nil {
			planBlob, err := json.Marshal(plan)
			if err != nil {
				return err
			}
			updates["action_plan"] = datatypes.JSON(planBlob)
		}

		return db.Model(&audit).Updates(updates).Error
	})
}

// UpdateItemAI refreshes one item's AI suggestion and per-photo analysis.
func UpdateItemAI(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid item id!", nil)
	}

	actor, err := loadActor(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var item models.AuditItem
	if err := db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Audit item not found!", nil)
		}
		log.Printf("[AI] failed to load item %d: %v", itemID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load audit item!", nil)
	}

	// The guard needs the parent audit; if it cannot be loaded the request is
	// denied rather than allowed through.
	var audit models.Audit
	if err := db.First(&audit, item.AuditID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Audit not found!", nil)
		}
		log.Printf("[AI] failed to load audit %d for item %d: %v", item.AuditID, itemID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load audit!", nil)
	}

	if allowed, reason := middleware.CanRunAuditAI(actor, &audit); !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, reason, nil)
	}

	photos := item.PhotoList()

	suggestion, err := utils.AI.SuggestItemScore(item.Item, photos, item.Comments)
	if err != nil {
		return aiFailure(c, "Failed to suggest item score!", err)
	}

	entries, err := analyzeItemPhotos(photos, item.Category, item.Item)
	if err != nil {
		return aiFailure(c, "Failed to analyze item photos!", err)
	}

	composite := itemAIComposite{
		ScoreSuggestion: suggestion,
		PhotoAnalysis:   entries,
	}

	scheduleItemPersist(item.ID, composite)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit item AI updated successfully.", fiber.Map{
		"suggestedScore": suggestion.SuggestedScore,
		"aiAnalysis":     composite,
	})
}

// analyzeItemPhotos analyzes each photo concurrently. Result order follows
// the stored photo order regardless of completion order; empty entries keep
// their index but produce no result.
func analyzeItemPhotos(photos []string, category, itemName string) ([]photoAnalysisEntry, error) {
	results := make([]*utils.PhotoAnalysis, len(photos))
	errs := make([]error, len(photos))
	context := fmt.Sprintf("%s: %s", category, itemName)

	var wg sync.WaitGroup
	for i, photo := range photos {
		if photo == "" {
			continue
		}
		wg.Add(1)
		go func(i int, photo string) {
			defer wg.Done()
			results[i], errs[i] = utils.AI.AnalyzePhoto(photo, context)
		}(i, photo)
	}
	wg.Wait()

	entries := []photoAnalysisEntry{}
	for i := range photos {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if results[i] == nil {
			continue
		}
		entries = append(entries, photoAnalysisEntry{
			Label:    fmt.Sprintf("photo_%d", i+1),
			Analysis: results[i],
		})
	}

	return entries, nil
}

// scheduleItemPersist writes the advisory AI fields back onto the item off
// the request path. No-op if the item has been deleted meanwhile.
func scheduleItemPersist(itemID uint, composite itemAIComposite) {
	utils.Tasks.Enqueue(fmt.Sprintf("persist ai analysis for item %d", itemID), func() error {
		db := database.Database.Db

		var item models.AuditItem
		if err := db.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		blob, err := json.Marshal(composite)
		if err != nil {
			return err
		}

		return db.Model(&item).Updates(map[string]interface{}{
			"ai_suggested_score": composite.ScoreSuggestion.SuggestedScore,
			"ai_analysis":        datatypes.JSON(blob),
		}).Error
	})
}

// GetAuditInsights returns the audit's compliance insights. Persisted
// insights are returned verbatim; otherwise they are generated once and
// written back inline so the next read hits the cache.
func GetAuditInsights(c *fiber.Ctx) error {
	auditID, err := c.ParamsInt("auditId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid audit id!", nil)
	}

	actor, err := loadActor(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var audit models.Audit
	err = db.
		Preload("Property").
		Preload("Auditor").
		Preload("Items").
		First(&audit, auditID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Audit not found!", nil)
		}
		log.Printf("[AI] failed to load audit %d: %v", auditID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load audit!", nil)
	}

	if allowed, reason := middleware.CanRunAuditAI(actor, &audit); !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, reason, nil)
	}

	// Cache hit: never regenerate.
	if len(audit.AIInsights) > 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit insights retrieved.",
			json.RawMessage(audit.AIInsights))
	}

	snapshot := utils.BuildAuditSnapshot(&audit)

	insights, err := utils.AI.GenerateComplianceInsights(snapshot)
	if err != nil {
		return aiFailure(c, "Failed to generate insights!", err)
	}

	// Read path wants immediate consistency, so this write is inline.
	blob, err := json.Marshal(insights)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode insights!", nil)
	}
	if err := db.Model(&audit).Update("ai_insights", datatypes.JSON(blob)).Error; err != nil {
		log.Printf("[AI] failed to persist insights for audit %d: %v", audit.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to persist insights!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit insights generated.", insights)
}
