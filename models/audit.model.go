package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit statuses. Scheduled audits move to in_progress while the auditor
// walks the checklist, then submitted -> reviewed -> approved/rejected.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
	StatusReviewed   = "reviewed"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
)

type Audit struct {
	gorm.Model
	PropertyID uint     `gorm:"not null;index" json:"propertyId"`
	Property   Property `json:"property,omitempty"`

	AuditorID  uint  `gorm:"not null;index" json:"auditorId"`
	Auditor    User  `gorm:"foreignKey:AuditorID" json:"auditor,omitempty"`
	ReviewerID *uint `gorm:"index" json:"reviewerId"`
	Reviewer   *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`

	Status string `gorm:"default:'scheduled'" json:"status"`

	OverallScore     *float64 `json:"overallScore"`
	CleanlinessScore *float64 `json:"cleanlinessScore"`
	BrandingScore    *float64 `json:"brandingScore"`
	OperationalScore *float64 `json:"operationalScore"`
	ComplianceZone   string   `gorm:"default:''" json:"complianceZone"`

	Findings   datatypes.JSON `json:"findings"`
	ActionPlan datatypes.JSON `json:"actionPlan"`
	AIReport   datatypes.JSON `gorm:"column:ai_report" json:"aiReport"`
	AIInsights datatypes.JSON `gorm:"column:ai_insights" json:"aiInsights"`

	SubmittedAt *time.Time `json:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt"`

	Items []AuditItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// IsValidStatus reports whether status is a recognized audit status.
func IsValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusInProgress, StatusSubmitted, StatusReviewed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ApplyStatus moves the audit to the target status. SubmittedAt and
// ReviewedAt are stamped the first time their status is entered and never
// overwritten on a resend. Unknown target values are rejected, not persisted.
func (a *Audit) ApplyStatus(target string, at time.Time) error {
	if !IsValidStatus(target) {
		return fmt.Errorf("invalid audit status %q", target)
	}

	a.Status = target

	switch target {
	case StatusSubmitted:
		if a.SubmittedAt == nil {
			t := at
			a.SubmittedAt = &t
		}
	case StatusReviewed:
		if a.ReviewedAt == nil {
			t := at
			a.ReviewedAt = &t
		}
	}

	return nil
}
