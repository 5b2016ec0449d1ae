package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opsdash/india-ops/config"
	"github.com/opsdash/india-ops/router"
	"github.com/opsdash/india-ops/seeder"
	"github.com/opsdash/india-ops/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	p := seeder.Params{
		Seed:      2024,
		Customers: 30,
		Orders:    150,
		Tickets:   60,
		Start:     time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, seeder.New(db).Run(p))

	return router.SetupRouter(db, config.Config{})
}

func getJSON(t *testing.T, r *gin.Engine, path string) map[string]interface{} {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "GET %s: %s", path, w.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["status"])
	return response
}

// TestAPIEndToEnd seeds an in-memory store and walks the dashboard flow:
// health check, dataset summary, KPI block, breakdowns, support views,
// alerts and the report download.
func TestAPIEndToEnd(t *testing.T) {
	r := setupTestServer(t)

	// 1. Health
	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// 2. Dataset summary reflects the seeded counts
	summary := getJSON(t, r, "/api/v1/dataset")
	data := summary["data"].(map[string]interface{})
	assert.EqualValues(t, 30, data["customers"])
	assert.EqualValues(t, 150, data["orders"])
	assert.EqualValues(t, 60, data["tickets"])

	// 3. KPI block over the full window
	kpis := getJSON(t, r, "/api/v1/dashboard/kpis?start=2023-01-01&end=2023-12-31")
	kpiData := kpis["data"].(map[string]interface{})
	assert.Greater(t, kpiData["gmv"].(float64), 0.0)

	// 4. Dashboard breakdowns
	getJSON(t, r, "/api/v1/dashboard/revenue-trend?start=2023-01-01&end=2023-12-31")
	states := getJSON(t, r, "/api/v1/dashboard/states?start=2023-01-01&end=2023-12-31")
	assert.NotEmpty(t, states["data"])
	getJSON(t, r, "/api/v1/dashboard/categories?start=2023-01-01&end=2023-12-31")
	getJSON(t, r, "/api/v1/dashboard/payments?start=2023-01-01&end=2023-12-31")
	getJSON(t, r, "/api/v1/dashboard/zones?start=2023-01-01&end=2023-12-31")
	getJSON(t, r, "/api/v1/dashboard/monthly-yoy")
	getJSON(t, r, "/api/v1/dashboard/top-customers?start=2023-01-01&end=2023-12-31&limit=5")
	getJSON(t, r, "/api/v1/dashboard/churn-risk?end=2023-12-31")

	// 5. Support views
	agents := getJSON(t, r, "/api/v1/support/agents?start=2023-01-01&end=2023-12-31")
	assert.NotEmpty(t, agents["data"])
	getJSON(t, r, "/api/v1/support/tickets?start=2023-01-01&end=2023-12-31")
	getJSON(t, r, "/api/v1/support/weekly-csat?weeks=8")
	getJSON(t, r, "/api/v1/support/weekly-ops?weeks=8")

	// 6. Alerts run without error on the seeded series
	getJSON(t, r, "/api/v1/alerts")

	// 7. Report download
	req, _ = http.NewRequest("GET", "/api/v1/report?start=2023-01-01&end=2023-12-31", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Customer Operations Analytics")
}

func TestAPIRejectsBadDates(t *testing.T) {
	r := setupTestServer(t)

	req, _ := http.NewRequest("GET", "/api/v1/dashboard/kpis?start=banana", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req, _ = http.NewRequest("GET", "/api/v1/dashboard/kpis?start=2023-12-31&end=2023-01-01", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDigestRequiresRecipient(t *testing.T) {
	r := setupTestServer(t)

	req, _ := http.NewRequest("POST", "/api/v1/alerts/digest", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
