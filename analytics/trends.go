package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/opsdash/india-ops/models"
)

// WeeklyOps is one ISO-week bucket of order operations.
type WeeklyOps struct {
	Week        string  `json:"week"`
	Revenue     float64 `json:"revenue"`
	Orders      int64   `json:"orders"`
	AvgDelivery float64 `json:"avg_delivery"`
	ReturnRate  float64 `json:"return_rate"`
	CancelRate  float64 `json:"cancel_rate"`
}

type dailyOpsRow struct {
	Date         string
	Revenue      float64
	Orders       int64
	DeliveryDays int64
	Returned     int64
	Cancelled    int64
}

func isoWeek(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", err
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week), nil
}

// WeeklyOpsTrend aggregates orders into ISO weeks and returns the most
// recent `weeks` buckets in chronological order. Bucketing happens in Go so
// the same code runs on every supported driver.
func (q *Queries) WeeklyOpsTrend(weeks int) ([]WeeklyOps, error) {
	if weeks <= 0 {
		weeks = 8
	}
	var days []dailyOpsRow
	err := q.DB.Table("orders o").
		Select(`o.order_date AS date, SUM(o.final_amount) AS revenue, COUNT(*) AS orders,
			SUM(o.delivery_days) AS delivery_days,
			SUM(CASE WHEN o.order_status = 'Returned' THEN 1 ELSE 0 END) AS returned,
			SUM(CASE WHEN o.order_status = 'Cancelled' THEN 1 ELSE 0 END) AS cancelled`).
		Group("o.order_date").
		Order("o.order_date").
		Scan(&days).Error
	if err != nil {
		return nil, fmt.Errorf("analytics: weekly ops: %w", err)
	}

	type acc struct {
		revenue                        float64
		orders, delivery, ret, cancels int64
	}
	buckets := make(map[string]*acc)
	var order []string
	for _, d := range days {
		wk, err := isoWeek(d.Date)
		if err != nil {
			return nil, fmt.Errorf("analytics: weekly ops: %w", err)
		}
		b, ok := buckets[wk]
		if !ok {
			b = &acc{}
			buckets[wk] = b
			order = append(order, wk)
		}
		b.revenue += d.Revenue
		b.orders += d.Orders
		b.delivery += d.DeliveryDays
		b.ret += d.Returned
		b.cancels += d.Cancelled
	}
	sort.Strings(order)
	if len(order) > weeks {
		order = order[len(order)-weeks:]
	}

	out := make([]WeeklyOps, 0, len(order))
	for _, wk := range order {
		b := buckets[wk]
		w := WeeklyOps{Week: wk, Revenue: b.revenue, Orders: b.orders}
		if b.orders > 0 {
			w.AvgDelivery = float64(b.delivery) / float64(b.orders)
			w.ReturnRate = float64(b.ret) / float64(b.orders) * 100
			w.CancelRate = float64(b.cancels) / float64(b.orders) * 100
		}
		out = append(out, w)
	}
	return out, nil
}

// WeeklyCSAT is one ISO-week bucket of support quality.
type WeeklyCSAT struct {
	Week           string  `json:"week"`
	AvgCSAT        float64 `json:"avg_csat"`
	EscalationRate float64 `json:"escalation_rate"`
	TotalTickets   int64   `json:"total_tickets"`
}

// WeeklyCSATTrend mirrors WeeklyOpsTrend for the tickets table.
func (q *Queries) WeeklyCSATTrend(weeks int) ([]WeeklyCSAT, error) {
	if weeks <= 0 {
		weeks = 8
	}
	var days []struct {
		Date      string
		CSATSum   float64
		Tickets   int64
		Escalated int64
	}
	err := q.DB.Table("tickets t").
		Select(`t.created_date AS date, SUM(t.csat_score) AS csat_sum, COUNT(*) AS tickets,
			SUM(CASE WHEN t.status = 'Escalated' THEN 1 ELSE 0 END) AS escalated`).
		Group("t.created_date").
		Order("t.created_date").
		Scan(&days).Error
	if err != nil {
		return nil, fmt.Errorf("analytics: weekly csat: %w", err)
	}

	type acc struct {
		csat      float64
		tickets   int64
		escalated int64
	}
	buckets := make(map[string]*acc)
	var order []string
	for _, d := range days {
		wk, err := isoWeek(d.Date)
		if err != nil {
			return nil, fmt.Errorf("analytics: weekly csat: %w", err)
		}
		b, ok := buckets[wk]
		if !ok {
			b = &acc{}
			buckets[wk] = b
			order = append(order, wk)
		}
		b.csat += d.CSATSum
		b.tickets += d.Tickets
		b.escalated += d.Escalated
	}
	sort.Strings(order)
	if len(order) > weeks {
		order = order[len(order)-weeks:]
	}

	out := make([]WeeklyCSAT, 0, len(order))
	for _, wk := range order {
		b := buckets[wk]
		w := WeeklyCSAT{Week: wk, TotalTickets: b.tickets}
		if b.tickets > 0 {
			w.AvgCSAT = b.csat / float64(b.tickets)
			w.EscalationRate = float64(b.escalated) / float64(b.tickets) * 100
		}
		out = append(out, w)
	}
	return out, nil
}

// MonthlyRevenue is one calendar month of the year-over-year view.
type MonthlyRevenue struct {
	Year    string  `json:"year"`
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
	AOV     float64 `json:"aov"`
}

// MonthlyYoY buckets non-cancelled revenue by calendar month across the full
// window for year-over-year comparison.
func (q *Queries) MonthlyYoY(f Filters) ([]MonthlyRevenue, error) {
	var days []struct {
		Date    string
		Revenue float64
		Orders  int64
	}
	query := q.DB.Table("orders o").
		Select(`o.order_date AS date, SUM(o.final_amount) AS revenue, COUNT(*) AS orders`).
		Where("o.order_status NOT IN ?", []string{models.OrderCancelled, models.OrderProcessing}).
		Group("o.order_date").
		Order("o.order_date")
	if active(f.State) {
		query = query.Where("o.state = ?", f.State)
	}
	if active(f.Category) {
		query = query.Where("o.category = ?", f.Category)
	}
	if err := query.Scan(&days).Error; err != nil {
		return nil, fmt.Errorf("analytics: monthly yoy: %w", err)
	}

	type acc struct {
		revenue float64
		orders  int64
	}
	buckets := make(map[string]*acc)
	var order []string
	for _, d := range days {
		if len(d.Date) < 7 {
			continue
		}
		ym := d.Date[:7]
		b, ok := buckets[ym]
		if !ok {
			b = &acc{}
			buckets[ym] = b
			order = append(order, ym)
		}
		b.revenue += d.Revenue
		b.orders += d.Orders
	}
	sort.Strings(order)

	out := make([]MonthlyRevenue, 0, len(order))
	for _, ym := range order {
		b := buckets[ym]
		t, _ := time.Parse("2006-01", ym)
		m := MonthlyRevenue{
			Year:    ym[:4],
			Month:   t.Format("Jan"),
			Revenue: b.revenue,
			Orders:  b.orders,
		}
		if b.orders > 0 {
			m.AOV = b.revenue / float64(b.orders)
		}
		out = append(out, m)
	}
	return out, nil
}

// ChurnRisk is one customer's churn indicator.
type ChurnRisk struct {
	CustomerID     string  `json:"customer_id"`
	FullName       string  `json:"full_name"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Tier           string  `json:"tier"`
	Segment        string  `json:"segment"`
	Status         string  `json:"status"`
	LifetimeValue  float64 `json:"lifetime_value"`
	TotalOrders    int64   `json:"total_orders"`
	DaysSinceOrder int     `json:"days_since_order"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	ChurnScore     float64 `json:"churn_score"`
}

// ChurnRiskScores computes a per-customer churn score from recency, lifecycle
// status and order count. The score is deterministic: it is a pure function
// of the table contents.
func (q *Queries) ChurnRiskScores(end string, f Filters) ([]ChurnRisk, error) {
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("analytics: bad end date %q: %w", end, err)
	}

	var rows []struct {
		CustomerID    string
		FullName      string
		City          string
		State         string
		Tier          string
		Segment       string
		Status        string
		LifetimeValue float64
		TotalOrders   int64
		LastOrder     string
		AvgOrderValue float64
	}
	query := q.DB.Table("customers c").
		Joins(`LEFT JOIN orders o ON c.customer_id = o.customer_id
			AND o.order_status NOT IN ('Cancelled','Processing')`).
		Select(`c.customer_id, c.full_name, c.city, c.state, c.tier, c.segment, c.status,
			COALESCE(SUM(o.final_amount),0) AS lifetime_value,
			COUNT(o.order_id) AS total_orders,
			COALESCE(MAX(o.order_date),'') AS last_order,
			COALESCE(AVG(o.final_amount),0) AS avg_order_value`).
		Group("c.customer_id, c.full_name, c.city, c.state, c.tier, c.segment, c.status")
	if active(f.State) {
		query = query.Where("c.state = ?", f.State)
	}
	query = f.applySegment(query)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: churn risk: %w", err)
	}

	out := make([]ChurnRisk, 0, len(rows))
	for _, r := range rows {
		daysSince := 999
		if r.LastOrder != "" {
			if last, err := time.Parse(dateLayout, r.LastOrder); err == nil {
				daysSince = int(endDate.Sub(last).Hours() / 24)
				if daysSince < 0 {
					daysSince = 0
				}
			}
		}
		recency := math.Min(float64(daysSince), 180) / 180
		score := recency * 0.45
		switch r.Status {
		case models.CustomerChurned:
			score += 0.40
		case models.CustomerAtRisk:
			score += 0.25
		}
		score += (1 - math.Min(float64(r.TotalOrders), 10)/10) * 0.10
		score = math.Max(0, math.Min(1, score))

		out = append(out, ChurnRisk{
			CustomerID:     r.CustomerID,
			FullName:       r.FullName,
			City:           r.City,
			State:          r.State,
			Tier:           r.Tier,
			Segment:        r.Segment,
			Status:         r.Status,
			LifetimeValue:  r.LifetimeValue,
			TotalOrders:    r.TotalOrders,
			DaysSinceOrder: daysSince,
			AvgOrderValue:  r.AvgOrderValue,
			ChurnScore:     score,
		})
	}
	return out, nil
}
