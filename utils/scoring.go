package utils

import (
	"fmt"
	"hotelaudit/models"
	"strings"
)

// FindingScoreThreshold is the compliance cut-off on the 0-5 scale. An item
// with a human score below it is a finding. Fixed, not configurable.
const FindingScoreThreshold = 4.0

// DefaultPropertyClass is the property classification passed to action plan
// generation. Properties do not carry a classification column yet, so this
// stays a fixed default.
// TODO: derive from Property once a category column exists.
const DefaultPropertyClass = "luxury hotel"

// Compliance zones derived from the overall score.
const (
	ZoneGreen = "green"
	ZoneAmber = "amber"
	ZoneRed   = "red"
)

// Finding is an audit item whose human score fell below the threshold.
type Finding struct {
	Category string  `json:"category"`
	Item     string  `json:"item"`
	Score    float64 `json:"score"`
	Comments string  `json:"comments"`
}

// ItemSnapshot is the flattened per-item projection sent to the AI provider.
// No raw images, only the photo count.
type ItemSnapshot struct {
	Category   string   `json:"category"`
	Item       string   `json:"item"`
	Score      *float64 `json:"score"`
	Comments   string   `json:"comments"`
	PhotoCount int      `json:"photoCount"`
}

// AuditSnapshot is the flattened projection of an audit plus its items.
type AuditSnapshot struct {
	PropertyName     string         `json:"propertyName"`
	PropertyLocation string         `json:"propertyLocation"`
	AuditorName      string         `json:"auditorName"`
	OverallScore     *float64       `json:"overallScore"`
	CleanlinessScore *float64       `json:"cleanlinessScore"`
	BrandingScore    *float64       `json:"brandingScore"`
	OperationalScore *float64       `json:"operationalScore"`
	ComplianceZone   string         `json:"complianceZone"`
	Items            []ItemSnapshot `json:"items"`
	Findings         []Finding      `json:"findings"`
}

// BuildAuditSnapshot flattens an audit and its loaded items for the provider.
func BuildAuditSnapshot(audit *models.Audit) *AuditSnapshot {
	snapshot := &AuditSnapshot{
		PropertyName:     audit.Property.Name,
		PropertyLocation: audit.Property.Location,
		AuditorName:      audit.Auditor.Name,
		OverallScore:     audit.OverallScore,
		CleanlinessScore: audit.CleanlinessScore,
		BrandingScore:    audit.BrandingScore,
		OperationalScore: audit.OperationalScore,
		ComplianceZone:   audit.ComplianceZone,
		Items:            make([]ItemSnapshot, 0, len(audit.Items)),
		Findings:         CollectFindings(audit.Items),
	}

	for _, item := range audit.Items {
		snapshot.Items = append(snapshot.Items, ItemSnapshot{
			Category:   item.Category,
			Item:       item.Item,
			Score:      item.Score,
			Comments:   item.Comments,
			PhotoCount: len(item.PhotoList()),
		})
	}

	return snapshot
}

// CollectFindings returns the items with a human score below the threshold,
// in stored order. Unscored items are never findings.
func CollectFindings(items []models.AuditItem) []Finding {
	findings := []Finding{}
	for _, item := range items {
		if item.Score == nil || *item.Score >= FindingScoreThreshold {
			continue
		}
		findings = append(findings, Finding{
			Category: item.Category,
			Item:     item.Item,
			Score:    *item.Score,
			Comments: item.Comments,
		})
	}
	return findings
}

// ComputeAuditScores aggregates item scores into the four audit score fields.
// Items in a "cleanliness" or "branding" category feed their own averages,
// everything else counts as operational. Returns nils when nothing is scored.
func ComputeAuditScores(items []models.AuditItem) (overall, cleanliness, branding, operational *float64) {
	var all, clean, brand, ops []float64

	for _, item := range items {
		if item.Score == nil {
			continue
		}
		score := *item.Score
		all = append(all, score)

		category := strings.ToLower(item.Category)
		switch {
		case strings.Contains(category, "clean"):
			clean = append(clean, score)
		case strings.Contains(category, "brand"):
			brand = append(brand, score)
		default:
			ops = append(ops, score)
		}
	}

	return average(all), average(clean), average(brand), average(ops)
}

// ComplianceZoneFor maps an overall score to a compliance zone.
func ComplianceZoneFor(overall float64) string {
	switch {
	case overall >= 4:
		return ZoneGreen
	case overall >= 3:
		return ZoneAmber
	default:
		return ZoneRed
	}
}

func average(scores []float64) *float64 {
	if len(scores) == 0 {
		return nil
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := sum / float64(len(scores))
	return &avg
}

// PromptSummary renders the snapshot as text for AI prompts.
func (s *AuditSnapshot) PromptSummary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Property: %s (%s)\n", s.PropertyName, s.PropertyLocation)
	fmt.Fprintf(&b, "Auditor: %s\n", s.AuditorName)
	fmt.Fprintf(&b, "Scores: overall %s, cleanliness %s, branding %s, operational %s\n",
		formatScore(s.OverallScore), formatScore(s.CleanlinessScore),
		formatScore(s.BrandingScore), formatScore(s.OperationalScore))
	if s.ComplianceZone != "" {
		fmt.Fprintf(&b, "Compliance zone: %s\n", s.ComplianceZone)
	}

	b.WriteString("Checklist items:\n")
	for _, item := range s.Items {
		fmt.Fprintf(&b, "- [%s] %s: score %s, %d photo(s). %s\n",
			item.Category, item.Item, formatScore(item.Score), item.PhotoCount, item.Comments)
	}

	return b.String()
}

func formatScore(score *float64) string {
	if score == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *score)
}
