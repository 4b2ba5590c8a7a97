package utils

import (
	"hotelaudit/database"
	"hotelaudit/models"
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializePropertyScheduler sets up the hourly property aggregate recompute
func InitializePropertyScheduler() {
	log.Println("[PROPERTY-SCHEDULER] Initializing property aggregate scheduler...")

	c := cron.New()

	// Run at half past every hour
	c.AddFunc("30 * * * *", func() {
		log.Println("[PROPERTY-SCHEDULER] Recomputing property aggregates...")
		RecomputePropertyAggregates()
	})

	c.Start()
	log.Println("[PROPERTY-SCHEDULER] Property aggregate scheduler started - runs hourly")
}

// RecomputePropertyAggregates refreshes each property's overall score and
// last audit date from its terminal-state audits submitted this year.
func RecomputePropertyAggregates() {
	db := database.Database.Db
	yearStart := now.BeginningOfYear()

	var properties []models.Property
	if err := db.Find(&properties).Error; err != nil {
		log.Printf("[PROPERTY-SCHEDULER] failed to list properties: %v", err)
		return
	}

	terminal := []string{models.StatusApproved, models.StatusRejected}

	for _, property := range properties {
		var audits []models.Audit
		err := db.
			Where("property_id = ? AND status IN ? AND submitted_at >= ?", property.ID, terminal, yearStart).
			Order("submitted_at desc").
			Find(&audits).Error
		if err != nil {
			log.Printf("[PROPERTY-SCHEDULER] failed to load audits for property %d: %v", property.ID, err)
			continue
		}
		if len(audits) == 0 {
			continue
		}

		var scores []float64
		for _, audit := range audits {
			if audit.OverallScore != nil {
				scores = append(scores, *audit.OverallScore)
			}
		}

		updates := map[string]interface{}{
			"last_audit_date": audits[0].SubmittedAt,
		}
		if avg := average(scores); avg != nil {
			updates["overall_score"] = *avg
		}

		if err := db.Model(&models.Property{}).Where("id = ?", property.ID).Updates(updates).Error; err != nil {
			log.Printf("[PROPERTY-SCHEDULER] failed to update property %d: %v", property.ID, err)
		}
	}
}
