package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/opsdash/india-ops/analytics"
	"github.com/opsdash/india-ops/utils"
)

// ReportService renders the downloadable HTML operations report.
type ReportService struct {
	queries *analytics.Queries
	alerts  *AlertService
}

func NewReportService(q *analytics.Queries) *ReportService {
	return &ReportService{queries: q, alerts: NewAlertService(q)}
}

// ReportData is everything the report template consumes.
type ReportData struct {
	StartDate     string
	EndDate       string
	GeneratedAt   string
	KPIs          *analytics.KPISnapshot
	TopStates     []analytics.StatePerf
	TopCategories []analytics.CategoryPerf
	TopPayments   []analytics.PaymentPerf
	TopAgents     []analytics.AgentPerf
	TicketsByCat  []ticketCatTotal
	Alerts        []Alert
	HighRisk      int
	MediumRisk    int
	Weekly        []analytics.WeeklyOps
}

type ticketCatTotal struct {
	Category string
	Total    int64
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Build collects the report dataset for [start, end].
func (s *ReportService) Build(start, end string) (*ReportData, error) {
	f := analytics.Filters{}

	kpis, err := s.queries.KPIs(start, end, f)
	if err != nil {
		return nil, err
	}
	states, err := s.queries.StatePerformance(start, end, f)
	if err != nil {
		return nil, err
	}
	categories, err := s.queries.CategoryMix(start, end, f)
	if err != nil {
		return nil, err
	}
	payments, err := s.queries.PaymentAnalysis(start, end, f)
	if err != nil {
		return nil, err
	}
	agents, err := s.queries.AgentPerformance(start, end, f)
	if err != nil {
		return nil, err
	}
	tickets, err := s.queries.TicketAnalytics(start, end, f)
	if err != nil {
		return nil, err
	}
	churn, err := s.queries.ChurnRiskScores(end, f)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alerts.DetectTrends()
	if err != nil {
		return nil, err
	}
	weekly, err := s.queries.WeeklyOpsTrend(12)
	if err != nil {
		return nil, err
	}

	byCat := make(map[string]int64)
	var catOrder []string
	for _, t := range tickets {
		if _, ok := byCat[t.TicketCategory]; !ok {
			catOrder = append(catOrder, t.TicketCategory)
		}
		byCat[t.TicketCategory] += t.Total
	}
	ticketTotals := make([]ticketCatTotal, 0, len(catOrder))
	for _, cat := range catOrder {
		ticketTotals = append(ticketTotals, ticketCatTotal{Category: cat, Total: byCat[cat]})
	}

	var high, medium int
	for _, c := range churn {
		switch {
		case c.ChurnScore > 0.7:
			high++
		case c.ChurnScore > 0.4:
			medium++
		}
	}

	return &ReportData{
		StartDate:     start,
		EndDate:       end,
		GeneratedAt:   time.Now().Format("02 Jan 2006"),
		KPIs:          kpis,
		TopStates:     head(states, 5),
		TopCategories: head(categories, 5),
		TopPayments:   head(payments, 5),
		TopAgents:     head(agents, 5),
		TicketsByCat:  ticketTotals,
		Alerts:        alerts,
		HighRisk:      high,
		MediumRisk:    medium,
		Weekly:        weekly,
	}, nil
}

// Render builds and renders the full HTML report.
func (s *ReportService) Render(start, end string) ([]byte, error) {
	data, err := s.Build(start, end)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("report: render: %w", err)
	}
	return buf.Bytes(), nil
}

var reportFuncs = template.FuncMap{
	"inr":  utils.FormatINR,
	"lakh": utils.FormatLakh,
	"pct":  func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"f1":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"f2":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Customer Operations Report — {{.StartDate}} to {{.EndDate}}</title>
<style>
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: Georgia, serif; background: #faf9f7; color: #1a1a1a; line-height: 1.65; font-size: 14px; }
  .page { max-width: 960px; margin: 0 auto; padding: 60px 48px; }
  .report-header { border-bottom: 3px solid #1a1a1a; padding-bottom: 28px; margin-bottom: 40px; }
  .report-header h1 { font-size: 28px; font-weight: 700; }
  .report-header .meta { font-size: 12px; color: #888; font-family: monospace; margin-top: 8px; }
  .section { margin-bottom: 44px; }
  .section-title { font-size: 11px; text-transform: uppercase; letter-spacing: 2.5px; color: #888;
    margin-bottom: 16px; padding-bottom: 8px; border-bottom: 1px solid #e5e5e5; font-family: monospace; }
  .kpi-grid { display: grid; grid-template-columns: repeat(4, 1fr); gap: 1px; background: #1a1a1a; border: 1px solid #1a1a1a; }
  .kpi-cell { background: #faf9f7; padding: 20px 16px; }
  .kpi-label { font-size: 10px; text-transform: uppercase; letter-spacing: 1.5px; color: #888; font-family: monospace; margin-bottom: 8px; }
  .kpi-value { font-size: 24px; font-weight: 700; font-family: monospace; }
  table.report-table { width: 100%; border-collapse: collapse; }
  table.report-table th { text-align: left; font-size: 11px; text-transform: uppercase; letter-spacing: 1px;
    color: #888; font-family: monospace; padding: 8px 10px; border-bottom: 2px solid #1a1a1a; }
  table.report-table td { padding: 8px 10px; border-bottom: 1px solid #e5e5e5; }
  .alert { padding: 14px 16px; margin-bottom: 10px; border-left: 4px solid #6b7280; background: #f8f9fa; }
  .alert.critical { border-color: #dc2626; background: #fef2f2; }
  .alert.warning  { border-color: #d97706; background: #fffbeb; }
  .alert.positive { border-color: #16a34a; background: #f0fdf4; }
</style>
</head>
<body>
<div class="page">
  <div class="report-header">
    <h1>Customer Operations Analytics</h1>
    <div class="meta">{{.StartDate}} — {{.EndDate}} · Generated {{.GeneratedAt}} · India Market</div>
  </div>

  <div class="section">
    <div class="section-title">Key Performance Indicators</div>
    <div class="kpi-grid">
      <div class="kpi-cell"><div class="kpi-label">GMV</div><div class="kpi-value">{{lakh .KPIs.GMV}}</div></div>
      <div class="kpi-cell"><div class="kpi-label">Orders</div><div class="kpi-value">{{.KPIs.Orders}}</div></div>
      <div class="kpi-cell"><div class="kpi-label">AOV</div><div class="kpi-value">{{inr .KPIs.AOV}}</div></div>
      <div class="kpi-cell"><div class="kpi-label">CSAT</div><div class="kpi-value">{{f2 .KPIs.CSAT}}</div></div>
      <div class="kpi-cell"><div class="kpi-label">Return Rate</div><div class="kpi-value">{{pct .KPIs.ReturnRate}}</div></div>
      <div class="kpi-cell"><div class="kpi-label">Cancel Rate</div><div class="kpi-value">{{pct .KPIs.CancelRate}}</div></div>
      <div class="kpi-cell"><div class="kpi-label">Avg Delivery</div><div class="kpi-value">{{f1 .KPIs.AvgDelivery}}d</div></div>
      <div class="kpi-cell"><div class="kpi-label">Resolution</div><div class="kpi-value">{{pct .KPIs.Resolution}}</div></div>
    </div>
  </div>

  <div class="section">
    <div class="section-title">Trend Alerts</div>
    {{if .Alerts}}{{range .Alerts}}
    <div class="alert {{.Severity}}"><strong>{{.Metric}}</strong> — {{.Message}}</div>
    {{end}}{{else}}
    <p style="color:#666;font-style:italic">No significant trend deviations detected. All metrics within normal range.</p>
    {{end}}
  </div>

  <div class="section">
    <div class="section-title">Top States by Revenue</div>
    <table class="report-table">
      <tr><th>State</th><th>Revenue</th><th>Orders</th><th>Return Rate</th></tr>
      {{range .TopStates}}<tr><td>{{.State}}</td><td>{{inr .Revenue}}</td><td>{{.Orders}}</td><td>{{pct .ReturnRate}}</td></tr>{{end}}
    </table>
  </div>

  <div class="section">
    <div class="section-title">Category Mix</div>
    <table class="report-table">
      <tr><th>Category</th><th>Revenue</th><th>Orders</th><th>AOV</th></tr>
      {{range .TopCategories}}<tr><td>{{.Category}}</td><td>{{inr .Revenue}}</td><td>{{.Orders}}</td><td>{{inr .AOV}}</td></tr>{{end}}
    </table>
  </div>

  <div class="section">
    <div class="section-title">Payment Methods</div>
    <table class="report-table">
      <tr><th>Method</th><th>Orders</th><th>Revenue</th></tr>
      {{range .TopPayments}}<tr><td>{{.PaymentMethod}}</td><td>{{.Orders}}</td><td>{{inr .Revenue}}</td></tr>{{end}}
    </table>
  </div>

  <div class="section">
    <div class="section-title">Top Agents</div>
    <table class="report-table">
      <tr><th>Agent</th><th>Resolved</th><th>Avg CSAT</th><th>Avg Resolution</th></tr>
      {{range .TopAgents}}<tr><td>{{.AgentName}}</td><td>{{.Resolved}}</td><td>{{f2 .AvgCSAT}}</td><td>{{f1 .AvgResolutionH}}h</td></tr>{{end}}
    </table>
  </div>

  <div class="section">
    <div class="section-title">Ticket Volume by Category</div>
    <table class="report-table">
      <tr><th>Category</th><th>Tickets</th></tr>
      {{range .TicketsByCat}}<tr><td>{{.Category}}</td><td>{{.Total}}</td></tr>{{end}}
    </table>
  </div>

  <div class="section">
    <div class="section-title">Churn Risk</div>
    <p>{{.HighRisk}} customers at high risk (score &gt; 0.7), {{.MediumRisk}} at medium risk (0.4–0.7).</p>
  </div>
</div>
</body>
</html>`))
