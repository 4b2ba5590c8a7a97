package auditController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hotelaudit/config"
	"hotelaudit/database"
	"hotelaudit/middleware"
	"hotelaudit/models"
	auditValidators "hotelaudit/validators/audit"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var (
	testDBCounter int64
	seedCounter   int64
)

func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4, AITaskQueue: 16}

	dsn := fmt.Sprintf("file:audittest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	// Same wiring as routers/auditRoutes, registered inline because that
	// package imports this one.
	app := fiber.New()
	auditGroup := app.Group("/audits")
	auditGroup.Get("/", middleware.JWTMiddleware, ListAudits)
	auditGroup.Post("/", auditValidators.CreateAudit(), middleware.JWTMiddleware, CreateAudit)
	auditGroup.Put("/items/:itemId", auditValidators.UpdateAuditItem(), middleware.JWTMiddleware, UpdateAuditItem)
	auditGroup.Get("/:auditId", middleware.JWTMiddleware, GetAudit)
	auditGroup.Put("/:auditId", auditValidators.UpdateAudit(), middleware.JWTMiddleware, UpdateAudit)
	auditGroup.Get("/:auditId/items", middleware.JWTMiddleware, ListAuditItems)
	auditGroup.Post("/:auditId/items", auditValidators.CreateAuditItem(), middleware.JWTMiddleware, CreateAuditItem)

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, role string) (models.User, string) {
	t.Helper()

	n := atomic.AddInt64(&seedCounter, 1)
	user := models.User{
		Username: fmt.Sprintf("audituser%d", n),
		Password: "not-checked-here",
		Name:     fmt.Sprintf("Audit User %d", n),
		Email:    fmt.Sprintf("audituser%d@example.com", n),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

func seedProperty(t *testing.T, db *gorm.DB) models.Property {
	t.Helper()

	group := models.HotelGroup{Name: "Grand Group"}
	require.NoError(t, db.Create(&group).Error)

	property := models.Property{Name: "Grand Palms", Location: "Mumbai", HotelGroupID: group.ID, Status: "active"}
	require.NoError(t, db.Create(&property).Error)

	return property
}

func seedAudit(t *testing.T, db *gorm.DB, propertyID, auditorID uint, status string) models.Audit {
	t.Helper()

	audit := models.Audit{PropertyID: propertyID, AuditorID: auditorID, Status: status}
	require.NoError(t, db.Create(&audit).Error)

	return audit
}

func seedItem(t *testing.T, db *gorm.DB, auditID uint, category, name string, itemScore *float64) models.AuditItem {
	t.Helper()

	item := models.AuditItem{AuditID: auditID, Category: category, Item: name, Score: itemScore, Status: "pending"}
	require.NoError(t, db.Create(&item).Error)

	return item
}

func fscore(v float64) *float64 { return &v }

func request(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (*http.Response, apiEnvelope) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		blob, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(blob)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	return resp, env
}

func TestCreateAuditReviewerAssignmentIsGated(t *testing.T) {
	app, db := setupTest(t)
	auditor, auditorToken := seedUser(t, db, models.RoleAuditor)
	reviewer, _ := seedUser(t, db, models.RoleReviewer)
	_, adminToken := seedUser(t, db, models.RoleAdmin)
	property := seedProperty(t, db)

	body := map[string]interface{}{
		"propertyId": property.ID,
		"auditorId":  auditor.ID,
		"reviewerId": reviewer.ID,
	}

	resp, _ := request(t, app, http.MethodPost, "/audits/", auditorToken, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := request(t, app, http.MethodPost, "/audits/", adminToken, body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Audit
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, models.StatusScheduled, created.Status)
	require.NotNil(t, created.ReviewerID)
	assert.Equal(t, reviewer.ID, *created.ReviewerID)
}

func TestCreateAuditUnknownPropertyIsNotFound(t *testing.T) {
	app, db := setupTest(t)
	auditor, token := seedUser(t, db, models.RoleAuditor)

	resp, _ := request(t, app, http.MethodPost, "/audits/", token, map[string]interface{}{
		"propertyId": 9999,
		"auditorId":  auditor.ID,
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateAuditRejectsUnknownStatus(t *testing.T) {
	app, db := setupTest(t)
	auditor, token := seedUser(t, db, models.RoleAuditor)
	property := seedProperty(t, db)
	audit := seedAudit(t, db, property.ID, auditor.ID, models.StatusInProgress)

	resp, env := request(t, app, http.MethodPut, fmt.Sprintf("/audits/%d", audit.ID), token,
		map[string]string{"status": "archived"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Message, "invalid audit status")

	var persisted models.Audit
	require.NoError(t, db.First(&persisted, audit.ID).Error)
	assert.Equal(t, models.StatusInProgress, persisted.Status)
	assert.Nil(t, persisted.SubmittedAt)
}

func TestSubmitStampsTimestampExactlyOnce(t *testing.T) {
	app, db := setupTest(t)
	auditor, token := seedUser(t, db, models.RoleAuditor)
	property := seedProperty(t, db)
	audit := seedAudit(t, db, property.ID, auditor.ID, models.StatusInProgress)

	target := fmt.Sprintf("/audits/%d", audit.ID)

	resp, _ := request(t, app, http.MethodPut, target, token, map[string]string{"status": models.StatusSubmitted})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var first models.Audit
	require.NoError(t, db.First(&first, audit.ID).Error)
	require.NotNil(t, first.SubmittedAt)

	time.Sleep(20 * time.Millisecond)

	resp, _ = request(t, app, http.MethodPut, target, token, map[string]string{"status": models.StatusSubmitted})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var second models.Audit
	require.NoError(t, db.First(&second, audit.ID).Error)
	require.NotNil(t, second.SubmittedAt)
	assert.WithinDuration(t, *first.SubmittedAt, *second.SubmittedAt, 5*time.Millisecond)
}

func TestReviewStampsReviewedAt(t *testing.T) {
	app, db := setupTest(t)
	auditor, _ := seedUser(t, db, models.RoleAuditor)
	_, reviewerToken := seedUser(t, db, models.RoleReviewer)
	property := seedProperty(t, db)
	audit := seedAudit(t, db, property.ID, auditor.ID, models.StatusSubmitted)

	resp, _ := request(t, app, http.MethodPut, fmt.Sprintf("/audits/%d", audit.ID), reviewerToken,
		map[string]string{"status": models.StatusReviewed})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var persisted models.Audit
	require.NoError(t, db.First(&persisted, audit.ID).Error)
	assert.Equal(t, models.StatusReviewed, persisted.Status)
	assert.NotNil(t, persisted.ReviewedAt)
}

func TestSubmissionAggregatesScoresFromItems(t *testing.T) {
	app, db := setupTest(t)
	auditor, token := seedUser(t, db, models.RoleAuditor)
	property := seedProperty(t, db)
	audit := seedAudit(t, db, property.ID, auditor.ID, models.StatusInProgress)
	seedItem(t, db, audit.ID, "cleanliness", "Lobby floor", fscore(4))
	seedItem(t, db, audit.ID, "branding", "Signage", fscore(2))
	seedItem(t, db, audit.ID, "operational", "Check-in time", fscore(3))

	resp, _ := request(t, app, http.MethodPut, fmt.Sprintf("/audits/%d", audit.ID), token,
		map[string]string{"status": models.StatusSubmitted})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var persisted models.Audit
	require.NoError(t, db.First(&persisted, audit.ID).Error)

	require.NotNil(t, persisted.OverallScore)
	assert.InDelta(t, 3.0, *persisted.OverallScore, 0.001)
	require.NotNil(t, persisted.CleanlinessScore)
	assert.InDelta(t, 4.0, *persisted.CleanlinessScore, 0.001)
	require.NotNil(t, persisted.BrandingScore)
	assert.InDelta(t, 2.0, *persisted.BrandingScore, 0.001)
	require.NotNil(t, persisted.OperationalScore)
	assert.InDelta(t, 3.0, *persisted.OperationalScore, 0.001)
	assert.Equal(t, "amber", persisted.ComplianceZone)

	// Below-threshold items become findings, the clean one does not.
	findings := string(persisted.Findings)
	assert.Contains(t, findings, "Signage")
	assert.Contains(t, findings, "Check-in time")
	assert.NotContains(t, findings, "Lobby floor")
}

func TestSubmissionKeepsCallerSuppliedScores(t *testing.T) {
	app, db := setupTest(t)
	auditor, token := seedUser(t, db, models.RoleAuditor)
	property := seedProperty(t, db)
	audit := seedAudit(t, db, property.ID, auditor.ID, models.StatusInProgress)
	seedItem(t, db, audit.ID, "cleanliness", "Lobby floor", fscore(1))

	resp, _ := request(t, app, http.MethodPut, fmt.Sprintf("/audits/%d", audit.ID), token,
		map[string]interface{}{"status": models.StatusSubmitted, "overallScore": 4.5})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var persisted models.Audit
	require.NoError(t, db.First(&persisted, audit.ID).Error)
	require.NotNil(t, persisted.OverallScore)
	assert.InDelta(t, 4.5, *persisted.OverallScore, 0.001)
	// Aggregation was skipped, so the category score stays empty.
	assert.Nil(t, persisted.CleanlinessScore)
}

func TestUpdateAuditScoreOutOfRangeFailsValidation(t *testing.T) {
	app, db := setupTest(t)
	auditor, token := seedUser(t, db, models.RoleAuditor)
	property := seedProperty(t, db)
	audit := seedAudit(t, db, property.ID, auditor.ID, models.StatusInProgress)

	resp, env := request(t, app, http.MethodPut, fmt.Sprintf("/audits/%d", audit.ID), token,
		map[string]interface{}{"overallScore": 7.5})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Validation failed!", env.Message)
}

func TestUpdateAuditItemIgnoresAdvisoryFields(t *testing.T) {
	app, db := setupTest(t)
	auditor, token := seedUser(t, db, models.RoleAuditor)
	property := seedProperty(t, db)
	audit := seedAudit(t, db, property.ID, auditor.ID, models.StatusInProgress)
	item := seedItem(t, db, audit.ID, "cleanliness", "Lobby floor", nil)

	resp, _ := request(t, app, http.MethodPut, fmt.Sprintf("/audits/items/%d", item.ID), token,
		map[string]interface{}{
			"score":            4.0,
			"comments":         "acceptable",
			"aiSuggestedScore": 1.0,
		})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var persisted models.AuditItem
	require.NoError(t, db.First(&persisted, item.ID).Error)
	require.NotNil(t, persisted.Score)
	assert.Equal(t, 4.0, *persisted.Score)
	assert.Equal(t, "acceptable", persisted.Comments)
	// AI fields are provider-owned and never writable through this route.
	assert.Nil(t, persisted.AISuggestedScore)
}

func TestListAuditsFiltersByStatus(t *testing.T) {
	app, db := setupTest(t)
	auditor, token := seedUser(t, db, models.RoleAuditor)
	property := seedProperty(t, db)
	seedAudit(t, db, property.ID, auditor.ID, models.StatusScheduled)
	seedAudit(t, db, property.ID, auditor.ID, models.StatusSubmitted)
	seedAudit(t, db, property.ID, auditor.ID, models.StatusSubmitted)

	resp, env := request(t, app, http.MethodGet, "/audits/?status=submitted", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var audits []models.Audit
	require.NoError(t, json.Unmarshal(env.Data, &audits))
	require.Len(t, audits, 2)
	for _, a := range audits {
		assert.Equal(t, models.StatusSubmitted, a.Status)
	}
}
