package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdash/india-ops/analytics"
)

func steadyOpsWeeks(n int) []analytics.WeeklyOps {
	weeks := make([]analytics.WeeklyOps, n)
	for i := range weeks {
		weeks[i] = analytics.WeeklyOps{
			Week:        "2024-W0" + string(rune('1'+i)),
			Revenue:     1000,
			Orders:      100,
			ReturnRate:  5,
			CancelRate:  5,
			AvgDelivery: 6,
		}
	}
	return weeks
}

func steadyCSATWeeks(n int) []analytics.WeeklyCSAT {
	weeks := make([]analytics.WeeklyCSAT, n)
	for i := range weeks {
		weeks[i] = analytics.WeeklyCSAT{
			Week:           "2024-W0" + string(rune('1'+i)),
			AvgCSAT:        4.0,
			EscalationRate: 10,
			TotalTickets:   50,
		}
	}
	return weeks
}

func alertsByMetric(alerts []Alert) map[string]Alert {
	out := make(map[string]Alert, len(alerts))
	for _, a := range alerts {
		out[a.Metric] = a
	}
	return out
}

func TestDetectStableSeriesYieldsNoAlerts(t *testing.T) {
	s := NewAlertService(nil)
	alerts := s.detect(steadyOpsWeeks(8), steadyCSATWeeks(8))
	assert.Empty(t, alerts)
}

func TestDetectTooFewWeeks(t *testing.T) {
	s := NewAlertService(nil)
	assert.Nil(t, s.detect(steadyOpsWeeks(3), steadyCSATWeeks(3)))
}

func TestDetectRevenueCrash(t *testing.T) {
	s := NewAlertService(nil)
	ops := steadyOpsWeeks(8)
	ops[7].Revenue = 700 // 30% under the 4-week baseline

	alerts := s.detect(ops, steadyCSATWeeks(8))
	byMetric := alertsByMetric(alerts)

	rev, ok := byMetric["Revenue"]
	require.True(t, ok, "expected a revenue alert")
	assert.Equal(t, SeverityCritical, rev.Severity)
	assert.Equal(t, "down", rev.Direction)
	assert.InDelta(t, -30.0, rev.PctChange, 1e-6)
	assert.Contains(t, rev.Message, "decreased by 30.0%")
	assert.Contains(t, rev.Recommendation, "order pipeline")
}

func TestDetectWarningAndPositive(t *testing.T) {
	s := NewAlertService(nil)
	ops := steadyOpsWeeks(8)
	ops[7].ReturnRate = 5.5 // +10% over baseline, lower is better
	ops[7].CancelRate = 4.0 // -20%, an improvement

	alerts := s.detect(ops, steadyCSATWeeks(8))
	byMetric := alertsByMetric(alerts)

	ret, ok := byMetric["Return Rate"]
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, ret.Severity)
	assert.Equal(t, "up", ret.Direction)

	can, ok := byMetric["Cancellation Rate"]
	require.True(t, ok)
	assert.Equal(t, SeverityPositive, can.Severity)
	assert.Contains(t, can.Message, "improving")
}

func TestDetectCSATDrop(t *testing.T) {
	s := NewAlertService(nil)
	csat := steadyCSATWeeks(8)
	csat[7].AvgCSAT = 3.0 // -25%

	alerts := s.detect(steadyOpsWeeks(8), csat)
	byMetric := alertsByMetric(alerts)

	a, ok := byMetric["CSAT Score"]
	require.True(t, ok)
	assert.Equal(t, SeverityCritical, a.Severity)
}

func TestDetectSortsBySeverity(t *testing.T) {
	s := NewAlertService(nil)
	ops := steadyOpsWeeks(8)
	ops[7].Revenue = 700    // critical
	ops[7].CancelRate = 4.0 // positive
	ops[7].ReturnRate = 5.5 // warning

	alerts := s.detect(ops, steadyCSATWeeks(8))
	require.GreaterOrEqual(t, len(alerts), 3)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.Equal(t, SeverityPositive, alerts[len(alerts)-1].Severity)
}

func TestGradeSeverity(t *testing.T) {
	// Higher-is-better metric.
	assert.Equal(t, SeverityCritical, gradeSeverity(-20, true, 8))
	assert.Equal(t, SeverityWarning, gradeSeverity(-10, true, 8))
	assert.Equal(t, SeverityPositive, gradeSeverity(12, true, 8))
	assert.Equal(t, SeverityNeutral, gradeSeverity(3, true, 8))

	// Lower-is-better metric.
	assert.Equal(t, SeverityCritical, gradeSeverity(20, false, 5))
	assert.Equal(t, SeverityWarning, gradeSeverity(8, false, 5))
	assert.Equal(t, SeverityPositive, gradeSeverity(-8, false, 5))
}

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "₹1,000.00", formatMetric(1000, "₹"))
	assert.Equal(t, "12.5%", formatMetric(12.5, "%"))
	assert.Equal(t, "6.3 days", formatMetric(6.3, "d"))
	assert.Equal(t, "42.0", formatMetric(42, ""))
}
