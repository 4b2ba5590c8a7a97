package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unconfiguredService() *GeminiService {
	return NewGeminiService("", "http://localhost:0", "gemini-test")
}

func TestUnconfiguredProviderIsNotAvailable(t *testing.T) {
	assert.False(t, unconfiguredService().IsAvailable())
	assert.True(t, NewGeminiService("key", "http://localhost:0", "gemini-test").IsAvailable())
}

func TestAnalyzePhotoFallback(t *testing.T) {
	analysis, err := unconfiguredService().AnalyzePhoto("base64data", "cleanliness: Lobby floor")

	require.NoError(t, err)
	assert.Equal(t, NeutralScore, analysis.SuggestedScore)
	assert.Equal(t, 0.0, analysis.Confidence)
	assert.Equal(t, "AI analysis unavailable - no API key", analysis.Analysis)
}

func TestSuggestItemScoreFallback(t *testing.T) {
	suggestion, err := unconfiguredService().SuggestItemScore("Lobby floor", []string{"p1"}, "worn")

	require.NoError(t, err)
	assert.Equal(t, NeutralScore, suggestion.SuggestedScore)
	assert.Equal(t, "AI service unavailable", suggestion.Reasoning)
	assert.Equal(t, 0.0, suggestion.Confidence)
	assert.NotNil(t, suggestion.ImprovementSuggestions)
}

func TestGenerateReportFallback(t *testing.T) {
	snapshot := &AuditSnapshot{PropertyName: "Grand Palms", Items: []ItemSnapshot{{Item: "a"}, {Item: "b"}}}

	report, err := unconfiguredService().GenerateReport(snapshot)

	require.NoError(t, err)
	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, "fallback", report.GeneratedBy)
	assert.Contains(t, report.Summary, "Grand Palms")
}

func TestGenerateActionPlanFallbackListsFindings(t *testing.T) {
	findings := []Finding{
		{Category: "cleanliness", Item: "Lobby floor", Score: 2},
		{Category: "operational", Item: "Check-in time", Score: 3},
	}

	plan, err := unconfiguredService().GenerateActionPlan(findings, DefaultPropertyClass)

	require.NoError(t, err)
	assert.Equal(t, DefaultPropertyClass, plan.PropertyClass)
	assert.Equal(t, findings, plan.Findings)
	assert.Contains(t, plan.Plan, "Lobby floor")
	assert.Contains(t, plan.Plan, "Check-in time")
}

func TestGenerateComplianceInsightsFallback(t *testing.T) {
	snapshot := &AuditSnapshot{
		ComplianceZone: ZoneAmber,
		Items:          []ItemSnapshot{{Item: "a"}, {Item: "b"}},
		Findings:       []Finding{{Item: "a", Score: 2}},
	}

	insights, err := unconfiguredService().GenerateComplianceInsights(snapshot)

	require.NoError(t, err)
	assert.Equal(t, ZoneAmber, insights.Zone)
	assert.Equal(t, "fallback", insights.GeneratedBy)
	assert.Contains(t, insights.Insights, "1 of 2")
}

func geminiStub(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
	}))
}

func TestSuggestItemScoreParsesStructuredReply(t *testing.T) {
	ts := geminiStub(t, `{"suggestedScore":4.5,"reasoning":"mostly compliant","improvementSuggestions":["polish floor"],"confidence":0.9}`)
	defer ts.Close()

	service := NewGeminiService("test-key", ts.URL, "gemini-test")

	suggestion, err := service.SuggestItemScore("Lobby floor", nil, "worn patches")
	require.NoError(t, err)
	assert.Equal(t, 4.5, suggestion.SuggestedScore)
	assert.Equal(t, "mostly compliant", suggestion.Reasoning)
	assert.Equal(t, []string{"polish floor"}, suggestion.ImprovementSuggestions)
	assert.Equal(t, 0.9, suggestion.Confidence)
}

func TestAnalyzePhotoKeepsRawTextWhenNotJSON(t *testing.T) {
	ts := geminiStub(t, "The photo shows a clean lobby.")
	defer ts.Close()

	service := NewGeminiService("test-key", ts.URL, "gemini-test")

	analysis, err := service.AnalyzePhoto("base64data", "")
	require.NoError(t, err)
	assert.Equal(t, "The photo shows a clean lobby.", analysis.Analysis)
	assert.Equal(t, NeutralScore, analysis.SuggestedScore)
}

func TestProviderErrorOnHTTPFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	service := NewGeminiService("test-key", ts.URL, "gemini-test")

	_, err := service.GenerateReport(&AuditSnapshot{PropertyName: "Grand Palms"})
	require.Error(t, err)

	var provErr *AIProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "generate-report", provErr.Op)
}

func TestProviderErrorOnEmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer ts.Close()

	service := NewGeminiService("test-key", ts.URL, "gemini-test")

	_, err := service.SuggestItemScore("Lobby floor", nil, "")
	var provErr *AIProviderError
	require.True(t, errors.As(err, &provErr))
}
