package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/opsdash/india-ops/analytics"
	"github.com/opsdash/india-ops/utils"
)

// Alert severities, ordered from most to least urgent.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityPositive = "positive"
	SeverityNeutral  = "neutral"
)

// Alert is one detected trend deviation: last week against the prior
// 4-week baseline.
type Alert struct {
	Metric         string  `json:"metric"`
	Current        float64 `json:"current"`
	Baseline       float64 `json:"baseline"`
	PctChange      float64 `json:"pct_change"`
	Direction      string  `json:"direction"`
	Severity       string  `json:"severity"`
	Unit           string  `json:"unit"`
	Message        string  `json:"message"`
	Recommendation string  `json:"recommendation"`
}

// AlertService detects week-over-baseline trend deviations in the generated
// tables. It reads through the analytics layer only.
type AlertService struct {
	queries *analytics.Queries
}

func NewAlertService(q *analytics.Queries) *AlertService {
	return &AlertService{queries: q}
}

type metricCheck struct {
	label        string
	current      float64
	baseline     float64
	unit         string
	higherBetter bool
	threshold    float64
}

func gradeSeverity(pct float64, higherBetter bool, threshold float64) string {
	if higherBetter {
		switch {
		case pct < -15:
			return SeverityCritical
		case pct < -threshold:
			return SeverityWarning
		case pct > threshold:
			return SeverityPositive
		}
		return SeverityNeutral
	}
	switch {
	case pct > 15:
		return SeverityCritical
	case pct > threshold:
		return SeverityWarning
	case pct < -threshold:
		return SeverityPositive
	}
	return SeverityNeutral
}

func formatMetric(v float64, unit string) string {
	switch unit {
	case "₹":
		return utils.FormatINR(math.Round(v))
	case "%":
		return fmt.Sprintf("%.1f%%", v)
	case "d":
		return fmt.Sprintf("%.1f days", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

func makeMessage(label string, pct, curr, base float64, unit string, higherBetter bool) string {
	direction := "decreased"
	if pct > 0 {
		direction = "increased"
	}
	sentiment := "concerning"
	if (pct > 0 && higherBetter) || (pct < 0 && !higherBetter) {
		sentiment = "improving"
	}
	return fmt.Sprintf("%s has %s by %.1f%% (current: %s, 4-week avg: %s). Trend is %s.",
		label, direction, math.Abs(pct), formatMetric(curr, unit), formatMetric(base, unit), sentiment)
}

var recommendations = map[string]string{
	"Revenue":           "Investigate order pipeline for the current week. Check if promotional campaigns are active and consider flash sale or targeted discount to boost GMV.",
	"Orders":            "Review acquisition channels. Check if there are any technical issues with checkout flow or if competitor activity is causing volume drop.",
	"Return Rate":       "Audit product listings and QC for top-returned categories. Consider tightening return windows for Electronics and Fashion. Review courier partner performance.",
	"Cancellation Rate": "Identify if cancellations are pre-delivery or post-payment. Review payment gateway uptime and implement cancellation deterrence at checkout.",
	"Delivery Days":     "Escalate to logistics partners for the affected states. Review last-mile carrier SLAs and consider activating backup delivery partners.",
	"CSAT Score":        "Pull CSAT verbatims for the past week. Schedule urgent CX review with Tier-2 support team. Check for any product-specific complaint spikes.",
	"Escalation Rate":   "Review Tier-1 agent training for the categories driving escalations. Check if new product launches are causing knowledge gaps.",
}

func recommendationFor(metric string) string {
	for key, rec := range recommendations {
		if strings.Contains(strings.ToLower(metric), strings.ToLower(key)) {
			return rec
		}
	}
	return fmt.Sprintf("Review %s trend and investigate root cause with the respective team.", metric)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// DetectTrends compares last week against the average of the four weeks
// preceding it and returns all deviations beyond each metric's threshold,
// most severe first. Fewer than four weeks of data yields no alerts.
func (s *AlertService) DetectTrends() ([]Alert, error) {
	ops, err := s.queries.WeeklyOpsTrend(8)
	if err != nil {
		return nil, err
	}
	csat, err := s.queries.WeeklyCSATTrend(8)
	if err != nil {
		return nil, err
	}
	return s.detect(ops, csat), nil
}

func (s *AlertService) detect(ops []analytics.WeeklyOps, csat []analytics.WeeklyCSAT) []Alert {
	if len(ops) < 4 {
		return nil
	}

	baseStart, baseEnd := len(ops)-6, len(ops)-2
	if baseStart < 0 {
		baseStart = 0
	}
	baseline := ops[baseStart:baseEnd]
	last := ops[len(ops)-1]

	var revs, ords, rets, cans, dels []float64
	for _, w := range baseline {
		revs = append(revs, w.Revenue)
		ords = append(ords, float64(w.Orders))
		rets = append(rets, w.ReturnRate)
		cans = append(cans, w.CancelRate)
		dels = append(dels, w.AvgDelivery)
	}

	checks := []metricCheck{
		{"Revenue", last.Revenue, mean(revs), "₹", true, 8},
		{"Orders", float64(last.Orders), mean(ords), "", true, 8},
		{"Return Rate", last.ReturnRate, mean(rets), "%", false, 5},
		{"Cancellation Rate", last.CancelRate, mean(cans), "%", false, 5},
		{"Delivery Days", last.AvgDelivery, mean(dels), "d", false, 5},
	}

	if len(csat) >= 4 {
		cStart := len(csat) - 5
		if cStart < 0 {
			cStart = 0
		}
		var csats, escs []float64
		for _, w := range csat[cStart : len(csat)-1] {
			csats = append(csats, w.AvgCSAT)
			escs = append(escs, w.EscalationRate)
		}
		lastCSAT := csat[len(csat)-1]
		checks = append(checks,
			metricCheck{"CSAT Score", lastCSAT.AvgCSAT, mean(csats), "", true, 3},
			metricCheck{"Escalation Rate", lastCSAT.EscalationRate, mean(escs), "%", false, 5},
		)
	}

	var alerts []Alert
	for _, c := range checks {
		if c.baseline == 0 {
			continue
		}
		pct := (c.current - c.baseline) / c.baseline * 100
		if math.Abs(pct) < c.threshold {
			continue
		}
		direction := "down"
		if pct > 0 {
			direction = "up"
		}
		alerts = append(alerts, Alert{
			Metric:         c.label,
			Current:        c.current,
			Baseline:       c.baseline,
			PctChange:      pct,
			Direction:      direction,
			Severity:       gradeSeverity(pct, c.higherBetter, c.threshold),
			Unit:           c.unit,
			Message:        makeMessage(c.label, pct, c.current, c.baseline, c.unit, c.higherBetter),
			Recommendation: recommendationFor(c.label),
		})
	}

	sevRank := map[string]int{
		SeverityCritical: 0, SeverityWarning: 1, SeverityPositive: 2, SeverityNeutral: 3,
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return sevRank[alerts[i].Severity] < sevRank[alerts[j].Severity]
	})
	return alerts
}
