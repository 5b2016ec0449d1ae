package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsoWeek(t *testing.T) {
	wk, err := isoWeek("2023-06-12")
	require.NoError(t, err)
	assert.Equal(t, "2023-W24", wk)

	// Jan 1 2023 was a Sunday, so it belongs to the previous ISO year.
	wk, err = isoWeek("2023-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2022-W52", wk)

	_, err = isoWeek("not-a-date")
	assert.Error(t, err)
}

func TestWeeklyOpsTrend(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.WeeklyOpsTrend(8)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2023-W20", rows[0].Week)
	assert.InDelta(t, 300.0, rows[0].Revenue, 1e-6)
	assert.EqualValues(t, 1, rows[0].Orders)

	assert.Equal(t, "2023-W23", rows[1].Week)
	assert.InDelta(t, 1500.0, rows[1].Revenue, 1e-6)
	assert.EqualValues(t, 2, rows[1].Orders)
	assert.InDelta(t, 50.0, rows[1].ReturnRate, 1e-6)
	assert.InDelta(t, 4.5, rows[1].AvgDelivery, 1e-6)

	assert.Equal(t, "2023-W24", rows[2].Week)
	assert.InDelta(t, 2800.0, rows[2].Revenue, 1e-6)
	assert.InDelta(t, 50.0, rows[2].CancelRate, 1e-6)
}

func TestWeeklyOpsTrendLimitsWeeks(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.WeeklyOpsTrend(2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2023-W23", rows[0].Week)
	assert.Equal(t, "2023-W24", rows[1].Week)
}

func TestWeeklyCSATTrend(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.WeeklyCSATTrend(8)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Both tickets sit in the same ISO week.
	assert.EqualValues(t, 2, rows[0].TotalTickets)
	assert.InDelta(t, 3.0, rows[0].AvgCSAT, 1e-6)
	assert.InDelta(t, 50.0, rows[0].EscalationRate, 1e-6)
}

func TestMonthlyYoY(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.MonthlyYoY(Filters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2023", rows[0].Year)
	assert.Equal(t, "May", rows[0].Month)
	assert.InDelta(t, 300.0, rows[0].Revenue, 1e-6)

	assert.Equal(t, "Jun", rows[1].Month)
	assert.InDelta(t, 1500.0, rows[1].Revenue, 1e-6)
	assert.EqualValues(t, 2, rows[1].Orders)
	assert.InDelta(t, 750.0, rows[1].AOV, 1e-6)
}

func TestChurnRiskScores(t *testing.T) {
	q := New(fixtureDB(t))

	rows, err := q.ChurnRiskScores("2023-06-30", Filters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]ChurnRisk{}
	for _, r := range rows {
		byID[r.CustomerID] = r
	}

	// Active customer with two recent orders scores low.
	c1 := byID["CUST00001"]
	assert.Equal(t, 19, c1.DaysSinceOrder)
	assert.EqualValues(t, 2, c1.TotalOrders)
	assert.InDelta(t, 19.0/180*0.45+0.8*0.10, c1.ChurnScore, 1e-6)

	// Churned customer with one stale order scores high.
	c2 := byID["CUST00002"]
	assert.Equal(t, 46, c2.DaysSinceOrder)
	assert.EqualValues(t, 1, c2.TotalOrders)
	assert.InDelta(t, 46.0/180*0.45+0.40+0.9*0.10, c2.ChurnScore, 1e-6)
	assert.Greater(t, c2.ChurnScore, c1.ChurnScore)
}

func TestChurnRiskNoOrders(t *testing.T) {
	q := New(fixtureDB(t))
	require.NoError(t, q.DB.Exec("DELETE FROM orders").Error)

	rows, err := q.ChurnRiskScores("2023-06-30", Filters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, 999, r.DaysSinceOrder)
		assert.GreaterOrEqual(t, r.ChurnScore, 0.55, "no-order customer must score high")
	}
}
