package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opsdash/india-ops/analytics"
	"github.com/opsdash/india-ops/seeder"
)

func seededDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestReportBuild(t *testing.T) {
	svc := NewReportService(analytics.New(seededDB(t)))

	data, err := svc.Build("2023-01-01", "2023-12-31")
	require.NoError(t, err)

	assert.Greater(t, data.KPIs.GMV, 0.0)
	assert.Greater(t, data.KPIs.Orders, int64(0))
	assert.NotEmpty(t, data.TopStates)
	assert.LessOrEqual(t, len(data.TopStates), 5)
	assert.NotEmpty(t, data.TopCategories)
	assert.NotEmpty(t, data.TopPayments)
	assert.NotEmpty(t, data.TopAgents)
	assert.NotEmpty(t, data.TicketsByCat)
	assert.Equal(t, "2023-01-01", data.StartDate)
}

func TestReportRender(t *testing.T) {
	svc := NewReportService(analytics.New(seededDB(t)))

	out, err := svc.Render("2023-01-01", "2023-12-31")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Customer Operations Analytics")
	assert.Contains(t, html, "Key Performance Indicators")
	assert.Contains(t, html, "Top States by Revenue")
	assert.Contains(t, html, "Churn Risk")
	assert.Contains(t, html, "2023-01-01")
	assert.Contains(t, html, "₹")
}

func TestReportRenderBadDates(t *testing.T) {
	svc := NewReportService(analytics.New(seededDB(t)))

	_, err := svc.Render("not-a-date", "2023-12-31")
	assert.Error(t, err)
}
