package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditItem struct {
	gorm.Model
	AuditID  uint   `gorm:"not null;index" json:"auditId"`
	Category string `gorm:"not null" json:"category"`
	Item     string `gorm:"not null" json:"item"`

	Score    *float64 `json:"score"`
	Comments string   `gorm:"default:''" json:"comments"`

	// Photos is a JSON array of image references, order matters.
	Photos datatypes.JSON `json:"photos"`

	// Advisory AI output. Never overwrites the human Score or Comments.
	AISuggestedScore *float64       `gorm:"column:ai_suggested_score" json:"aiSuggestedScore"`
	AIAnalysis       datatypes.JSON `gorm:"column:ai_analysis" json:"aiAnalysis"`

	Status string `gorm:"default:'pending'" json:"status"`
}

// PhotoList decodes the stored photo references, in stored order.
func (i *AuditItem) PhotoList() []string {
	if len(i.Photos) == 0 {
		return nil
	}
	var photos []string
	if err := json.Unmarshal(i.Photos, &photos); err != nil {
		return nil
	}
	return photos
}
