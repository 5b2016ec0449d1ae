package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opsdash/india-ops/models"
)

// fixtureDB builds a small hand-written dataset with known aggregates.
func fixtureDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{}, &models.Order{}, &models.Agent{},
		&models.Ticket{}, &models.Return{},
	))

	customers := []models.Customer{
		{CustomerID: "CUST00001", FullName: "Aarav Sharma", City: "Mumbai", State: "Maharashtra",
			Zone: "West", Segment: "Retail", Tier: "Bronze", Status: models.CustomerActive, AgeGroup: "26-35"},
		{CustomerID: "CUST00002", FullName: "Priya Gupta", City: "New Delhi", State: "Delhi",
			Zone: "North", Segment: "Corporate", Tier: "Bronze", Status: models.CustomerChurned, AgeGroup: "36-45"},
	}
	orders := []models.Order{
		{OrderID: "ORD000001", CustomerID: "CUST00001", OrderDate: "2023-06-10", DeliveryDate: "2023-06-15",
			Amount: 1050, GSTAmount: 50, Discount: 100, FinalAmount: 1000, Category: "Electronics",
			PaymentMethod: "UPI", OrderStatus: models.OrderDelivered, City: "Mumbai", State: "Maharashtra",
			Zone: "West", DeliveryDays: 5},
		{OrderID: "ORD000002", CustomerID: "CUST00001", OrderDate: "2023-06-11", DeliveryDate: "2023-06-15",
			Amount: 520, GSTAmount: 30, Discount: 50, FinalAmount: 500, Category: "Fashion",
			PaymentMethod: "COD", OrderStatus: models.OrderReturned, City: "Mumbai", State: "Maharashtra",
			Zone: "West", DeliveryDays: 4, IsReturned: true},
		{OrderID: "ORD000003", CustomerID: "CUST00002", OrderDate: "2023-06-12", DeliveryDate: "2023-06-18",
			Amount: 2000, GSTAmount: 100, Discount: 100, FinalAmount: 2000, Category: "Electronics",
			PaymentMethod: "UPI", OrderStatus: models.OrderCancelled, City: "New Delhi", State: "Delhi",
			Zone: "North", DeliveryDays: 6},
		{OrderID: "ORD000004", CustomerID: "CUST00002", OrderDate: "2023-06-13", DeliveryDate: "2023-06-20",
			Amount: 800, GSTAmount: 40, Discount: 40, FinalAmount: 800, Category: "Home & Kitchen",
			PaymentMethod: "EMI", OrderStatus: models.OrderProcessing, City: "New Delhi", State: "Delhi",
			Zone: "North", DeliveryDays: 7},
		{OrderID: "ORD000005", CustomerID: "CUST00002", OrderDate: "2023-05-15", DeliveryDate: "2023-05-20",
			Amount: 310, GSTAmount: 10, Discount: 20, FinalAmount: 300, Category: "Grocery & FMCG",
			PaymentMethod: "UPI", OrderStatus: models.OrderDelivered, City: "New Delhi", State: "Delhi",
			Zone: "North", DeliveryDays: 5},
	}
	agents := []models.Agent{
		{AgentID: "AGT001", AgentName: "Shreya Menon", Team: "Tier-1 Support", Shift: "Morning (6-14)", State: "Karnataka"},
	}
	tickets := []models.Ticket{
		{TicketID: "TKT000001", CustomerID: "CUST00001", AgentID: "AGT001", OrderID: "ORD000001",
			CreatedDate: "2023-06-05", ResolvedDate: "2023-06-06", TicketCategory: "Delivery Issue",
			Priority: "Medium", Status: models.TicketResolved, CSATScore: 4.0, ResolutionH: 10, FirstResponseH: 1,
			State: "Maharashtra"},
		{TicketID: "TKT000002", CustomerID: "CUST00002", AgentID: "AGT001", OrderID: "ORD000003",
			CreatedDate: "2023-06-06", ResolvedDate: "2023-06-07", TicketCategory: "Payment Failed",
			Priority: "High", Status: models.TicketEscalated, CSATScore: 2.0, ResolutionH: 6, FirstResponseH: 0.5,
			IsRepeat: true, State: "Delhi"},
	}

	require.NoError(t, db.Create(&customers).Error)
	require.NoError(t, db.Create(&orders).Error)
	require.NoError(t, db.Create(&agents).Error)
	require.NoError(t, db.Create(&tickets).Error)
	return db
}

func TestKPIs(t *testing.T) {
	q := New(fixtureDB(t))

	snap, err := q.KPIs("2023-06-01", "2023-06-30", Filters{})
	require.NoError(t, err)

	// Processing orders are excluded; Cancelled still count toward volume.
	assert.InDelta(t, 3500.0, snap.GMV, 1e-6)
	assert.EqualValues(t, 3, snap.Orders)
	assert.EqualValues(t, 2, snap.Customers)
	assert.InDelta(t, 3500.0/3, snap.AOV, 1e-6)
	assert.InDelta(t, 100.0/3, snap.ReturnRate, 1e-6)
	assert.InDelta(t, 100.0/3, snap.CancelRate, 1e-6)
	assert.InDelta(t, 5.0, snap.AvgDelivery, 1e-6)
	assert.InDelta(t, 250.0, snap.TotalDiscount, 1e-6)
	assert.InDelta(t, 180.0, snap.TotalGST, 1e-6)

	// Prior equal-length period holds only the May order.
	assert.InDelta(t, (3500.0-300.0)/300.0*100, snap.GMVDelta, 1e-6)

	assert.InDelta(t, 3.0, snap.CSAT, 1e-6)
	assert.InDelta(t, 50.0, snap.Resolution, 1e-6)
}

func TestKPIsStateFilter(t *testing.T) {
	q := New(fixtureDB(t))

	snap, err := q.KPIs("2023-06-01", "2023-06-30", Filters{State: "Maharashtra"})
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, snap.GMV, 1e-6)
	assert.EqualValues(t, 2, snap.Orders)
	assert.InDelta(t, 4.0, snap.CSAT, 1e-6)
}

func TestKPIsAllMeansNoFilter(t *testing.T) {
	q := New(fixtureDB(t))

	all, err := q.KPIs("2023-06-01", "2023-06-30", Filters{State: "All", Zone: "All"})
	require.NoError(t, err)
	none, err := q.KPIs("2023-06-01", "2023-06-30", Filters{})
	require.NoError(t, err)
	assert.Equal(t, none, all)
}

func TestRevenueTrend(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.RevenueTrend("2023-06-01", "2023-06-30", Filters{})
	require.NoError(t, err)
	// Cancelled and Processing excluded, so only two days remain.
	require.Len(t, rows, 2)
	assert.Equal(t, "2023-06-10", rows[0].Date)
	assert.InDelta(t, 1000.0, rows[0].Revenue, 1e-6)
	assert.Equal(t, "2023-06-11", rows[1].Date)
	assert.InDelta(t, 500.0, rows[1].Revenue, 1e-6)
}

func TestStatePerformance(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.StatePerformance("2023-06-01", "2023-06-30", Filters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Delhi leads on revenue because the cancelled order still counts here.
	assert.Equal(t, "Delhi", rows[0].State)
	assert.InDelta(t, 2000.0, rows[0].Revenue, 1e-6)
	assert.Equal(t, "Maharashtra", rows[1].State)
	assert.InDelta(t, 1500.0, rows[1].Revenue, 1e-6)
	assert.InDelta(t, 50.0, rows[1].ReturnRate, 1e-6)
}

func TestCategoryMix(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.CategoryMix("2023-06-01", "2023-06-30", Filters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Electronics", rows[0].Category)
	assert.InDelta(t, 1000.0, rows[0].Revenue, 1e-6)
	assert.Equal(t, "Fashion", rows[1].Category)
}

func TestPaymentAnalysis(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.PaymentAnalysis("2023-06-01", "2023-06-30", Filters{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byMethod := map[string]PaymentPerf{}
	for _, r := range rows {
		byMethod[r.PaymentMethod] = r
	}
	assert.EqualValues(t, 1, byMethod["UPI"].Orders)
	assert.InDelta(t, 100.0, byMethod["UPI"].CancelRate, 1e-6)
	assert.EqualValues(t, 1, byMethod["COD"].Orders)
	assert.InDelta(t, 0.0, byMethod["COD"].CancelRate, 1e-6)
}

func TestZoneComparison(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.ZoneComparison("2023-06-01", "2023-06-30", Filters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byZone := map[string]ZonePerf{}
	for _, r := range rows {
		byZone[r.Zone] = r
	}
	assert.InDelta(t, 1500.0, byZone["West"].Revenue, 1e-6)
	assert.InDelta(t, 2000.0, byZone["North"].Revenue, 1e-6)
	assert.EqualValues(t, 1, byZone["West"].Customers)
}

func TestAgentPerformance(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.AgentPerformance("2023-06-01", "2023-06-30", Filters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	a := rows[0]
	assert.Equal(t, "Shreya Menon", a.AgentName)
	assert.EqualValues(t, 2, a.Total)
	assert.EqualValues(t, 1, a.Resolved)
	assert.EqualValues(t, 1, a.Escalated)
	assert.EqualValues(t, 1, a.RepeatContacts)
	assert.InDelta(t, 3.0, a.AvgCSAT, 1e-6)
	assert.InDelta(t, 8.0, a.AvgResolutionH, 1e-6)
}

func TestTicketAnalytics(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.TicketAnalytics("2023-06-01", "2023-06-30", Filters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.EqualValues(t, 1, r.Total)
	}
}

func TestTopCustomers(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.TopCustomers("2023-01-01", "2023-12-31", Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Aarav Sharma", rows[0].FullName)
	assert.InDelta(t, 1500.0, rows[0].LifetimeValue, 1e-6)
	assert.Equal(t, "Priya Gupta", rows[1].FullName)
	assert.InDelta(t, 300.0, rows[1].LifetimeValue, 1e-6)
}
