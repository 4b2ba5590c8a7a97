package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotelaudit/config"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// NeutralScore is the fixed fallback score on the 0-5 scale, returned
// whenever the AI provider is unconfigured or a response cannot be parsed.
const NeutralScore = 3.0

// PhotoAnalysis is the result of analyzing a single audit photo.
type PhotoAnalysis struct {
	Analysis         string   `json:"analysis"`
	SuggestedScore   float64  `json:"suggestedScore"`
	Confidence       float64  `json:"confidence"`
	ComplianceIssues []string `json:"complianceIssues,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`
}

// ScoreSuggestion is the AI-suggested score for one audit item.
type ScoreSuggestion struct {
	SuggestedScore         float64  `json:"suggestedScore"`
	Reasoning              string   `json:"reasoning"`
	ImprovementSuggestions []string `json:"improvementSuggestions"`
	Confidence             float64  `json:"confidence"`
}

// AuditReport is the narrative report blob for a whole audit.
type AuditReport struct {
	ReportID    string    `json:"reportId"`
	Summary     string    `json:"summary"`
	GeneratedBy string    `json:"generatedBy"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// ActionPlan is the remediation plan generated from audit findings.
type ActionPlan struct {
	PropertyClass string    `json:"propertyClass"`
	Plan          string    `json:"plan"`
	Findings      []Finding `json:"findings"`
	GeneratedBy   string    `json:"generatedBy"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// ComplianceInsights is the compliance insight blob for an audit.
type ComplianceInsights struct {
	Insights    string    `json:"insights"`
	Zone        string    `json:"zone,omitempty"`
	GeneratedBy string    `json:"generatedBy"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// AIProviderError marks a provider call that failed outright. Degraded mode
// (no API key) is not an error, it produces fallback results instead.
type AIProviderError struct {
	Op  string
	Err error
}

func (e *AIProviderError) Error() string {
	return fmt.Sprintf("ai provider: %s: %v", e.Op, e.Err)
}

func (e *AIProviderError) Unwrap() error { return e.Err }

// AIProvider is the capability set offered by the analysis backend. Every
// operation is idempotent and safe to retry from the caller's point of view.
type AIProvider interface {
	IsAvailable() bool
	AnalyzePhoto(imageData, context string) (*PhotoAnalysis, error)
	SuggestItemScore(itemDescription string, photos []string, comments string) (*ScoreSuggestion, error)
	GenerateReport(snapshot *AuditSnapshot) (*AuditReport, error)
	GenerateActionPlan(findings []Finding, propertyClass string) (*ActionPlan, error)
	GenerateComplianceInsights(snapshot *AuditSnapshot) (*ComplianceInsights, error)
}

// AI is the process-wide provider instance, constructed once at startup.
var AI AIProvider

// InitGeminiService builds the global provider from AppConfig.
func InitGeminiService() {
	AI = NewGeminiService(
		config.AppConfig.GeminiApiKey,
		config.AppConfig.GeminiApiUrl,
		config.AppConfig.GeminiModel,
	)
}

// GeminiService talks to the Gemini generateContent REST API.
type GeminiService struct {
	apiKey string
	model  string
	client *resty.Client
}

func NewGeminiService(apiKey, baseURL, model string) *GeminiService {
	if apiKey == "" {
		log.Println("[GEMINI] API key not configured - AI features run in fallback mode")
	} else {
		log.Printf("[GEMINI] service initialized with model %s", model)
	}

	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		client: resty.New().SetBaseURL(baseURL),
	}
}

// IsAvailable reports whether real AI calls can be made.
func (g *GeminiService) IsAvailable() bool {
	return g.apiKey != ""
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt to Gemini and returns the first candidate text.
func (g *GeminiService) generate(op, prompt string) (string, error) {
	var out geminiResponse

	resp, err := g.client.R().
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", g.apiKey).
		SetBody(geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}).
		SetResult(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", g.model))
	if err != nil {
		return "", &AIProviderError{Op: op, Err: err}
	}
	if resp.IsError() {
		return "", &AIProviderError{Op: op, Err: fmt.Errorf("gemini returned %s", resp.Status())}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &AIProviderError{Op: op, Err: errors.New("empty response from gemini")}
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

// AnalyzePhoto analyzes one audit photo in the given item context.
func (g *GeminiService) AnalyzePhoto(imageData, context string) (*PhotoAnalysis, error) {
	if !g.IsAvailable() {
		return &PhotoAnalysis{
			Analysis:       "AI analysis unavailable - no API key",
			SuggestedScore: NeutralScore,
			Confidence:     0,
		}, nil
	}

	if context == "" {
		context = "General hotel audit item"
	}

	prompt := fmt.Sprintf(`Analyze this hotel audit photo and provide:
1. Overall assessment
2. Compliance issues identified
3. Suggested score (0-5 scale)
4. Recommendations for improvement

Context: %s
Photo (base64): %s

Respond with a JSON object: {"analysis": string, "suggestedScore": number, "confidence": number, "complianceIssues": [string], "recommendations": [string]}`, context, imageData)

	text, err := g.generate("analyze-photo", prompt)
	if err != nil {
		return nil, err
	}

	result := &PhotoAnalysis{SuggestedScore: NeutralScore, Confidence: 0.5}
	if parsed, ok := decodeJSONBlock(text, result); ok {
		return parsed.(*PhotoAnalysis), nil
	}
	result.Analysis = text
	return result, nil
}

// SuggestItemScore returns an AI-suggested score for an audit item.
func (g *GeminiService) SuggestItemScore(itemDescription string, photos []string, comments string) (*ScoreSuggestion, error) {
	if !g.IsAvailable() {
		return &ScoreSuggestion{
			SuggestedScore:         NeutralScore,
			Reasoning:              "AI service unavailable",
			ImprovementSuggestions: []string{},
			Confidence:             0,
		}, nil
	}

	prompt := fmt.Sprintf(`Analyze this hotel audit item and suggest a score (0-5 scale):

Item: %s
Auditor comments: %s
Photos attached: %d

Consider standard hotel audit criteria and respond with a JSON object:
{"suggestedScore": number, "reasoning": string, "improvementSuggestions": [string], "confidence": number}`,
		itemDescription, comments, len(photos))

	text, err := g.generate("suggest-score", prompt)
	if err != nil {
		return nil, err
	}

	result := &ScoreSuggestion{SuggestedScore: NeutralScore, Confidence: 0.5, ImprovementSuggestions: []string{}}
	if parsed, ok := decodeJSONBlock(text, result); ok {
		return parsed.(*ScoreSuggestion), nil
	}
	result.Reasoning = text
	return result, nil
}

// GenerateReport produces the narrative report for an audit snapshot.
func (g *GeminiService) GenerateReport(snapshot *AuditSnapshot) (*AuditReport, error) {
	report := &AuditReport{
		ReportID:    uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	if !g.IsAvailable() {
		report.GeneratedBy = "fallback"
		report.Summary = fmt.Sprintf(
			"AI report generation unavailable. Audit of %s covered %d checklist items.",
			snapshot.PropertyName, len(snapshot.Items))
		return report, nil
	}

	prompt := fmt.Sprintf(`Write a professional hotel audit report.

%s

Cover overall performance, category highlights, and notable low-scoring items.`,
		snapshot.PromptSummary())

	text, err := g.generate("generate-report", prompt)
	if err != nil {
		return nil, err
	}

	report.GeneratedBy = g.model
	report.Summary = text
	return report, nil
}

// GenerateActionPlan produces a remediation plan for the given findings.
// Callers only invoke this when at least one finding exists.
func (g *GeminiService) GenerateActionPlan(findings []Finding, propertyClass string) (*ActionPlan, error) {
	plan := &ActionPlan{
		PropertyClass: propertyClass,
		Findings:      findings,
		GeneratedAt:   time.Now().UTC(),
	}

	if !g.IsAvailable() {
		plan.GeneratedBy = "fallback"
		var b strings.Builder
		b.WriteString("AI action plan unavailable. Items requiring attention:\n")
		for _, f := range findings {
			fmt.Fprintf(&b, "- [%s] %s (scored %.1f)\n", f.Category, f.Item, f.Score)
		}
		plan.Plan = b.String()
		return plan, nil
	}

	var b strings.Builder
	for _, f := range findings {
		fmt.Fprintf(&b, "- %s / %s scored %.1f. Comments: %s\n", f.Category, f.Item, f.Score, f.Comments)
	}

	prompt := fmt.Sprintf(`Create a prioritized remediation action plan for a %s based on these audit findings:

%s
For each finding give corrective steps, an owner role, and a target timeframe.`, propertyClass, b.String())

	text, err := g.generate("generate-action-plan", prompt)
	if err != nil {
		return nil, err
	}

	plan.GeneratedBy = g.model
	plan.Plan = text
	return plan, nil
}

// GenerateComplianceInsights produces compliance insights for an audit snapshot.
func (g *GeminiService) GenerateComplianceInsights(snapshot *AuditSnapshot) (*ComplianceInsights, error) {
	insights := &ComplianceInsights{
		Zone:        snapshot.ComplianceZone,
		GeneratedAt: time.Now().UTC(),
	}

	if !g.IsAvailable() {
		insights.GeneratedBy = "fallback"
		insights.Insights = fmt.Sprintf(
			"AI insights unavailable. %d of %d checklist items fell below the compliance threshold.",
			len(snapshot.Findings), len(snapshot.Items))
		return insights, nil
	}

	prompt := fmt.Sprintf(`Provide compliance insights for this hotel audit:

%s

Identify systemic risks, trends across categories, and the top three priorities.`,
		snapshot.PromptSummary())

	text, err := g.generate("generate-compliance-insights", prompt)
	if err != nil {
		return nil, err
	}

	insights.GeneratedBy = g.model
	insights.Insights = text
	return insights, nil
}

// decodeJSONBlock tries to unmarshal the model's reply into dst. Gemini often
// wraps JSON in markdown fences, so those are stripped first.
func decodeJSONBlock(text string, dst interface{}) (interface{}, bool) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if !strings.HasPrefix(cleaned, "{") {
		return nil, false
	}
	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		return nil, false
	}
	return dst, true
}
