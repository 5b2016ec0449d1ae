package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/opsdash/india-ops/models"
)

const dateLayout = "2006-01-02"

// Queries is the read-only aggregation layer over the generated tables. It
// never writes; the dashboard, alerting and reporting surfaces all go
// through it.
type Queries struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Queries {
	return &Queries{DB: db}
}

// Filters narrows a query. Empty or "All" means no filtering on that
// dimension.
type Filters struct {
	State    string
	Zone     string
	Category string
	Segment  string
}

func active(v string) bool { return v != "" && v != "All" }

func (f Filters) applyOrder(q *gorm.DB) *gorm.DB {
	if active(f.State) {
		q = q.Where("o.state = ?", f.State)
	}
	if active(f.Zone) {
		q = q.Where("o.zone = ?", f.Zone)
	}
	if active(f.Category) {
		q = q.Where("o.category = ?", f.Category)
	}
	return q
}

func (f Filters) applySegment(q *gorm.DB) *gorm.DB {
	if active(f.Segment) {
		q = q.Where("c.segment = ?", f.Segment)
	}
	return q
}

// KPISnapshot is the dashboard headline block. Deltas compare against the
// immediately preceding period of equal length, in percent.
type KPISnapshot struct {
	GMV            float64 `json:"gmv"`
	GMVDelta       float64 `json:"gmv_delta"`
	Orders         int64   `json:"orders"`
	OrdersDelta    float64 `json:"orders_delta"`
	Customers      int64   `json:"customers"`
	CustomersDelta float64 `json:"customers_delta"`
	AOV            float64 `json:"aov"`
	AOVDelta       float64 `json:"aov_delta"`
	CSAT           float64 `json:"csat"`
	CSATDelta      float64 `json:"csat_delta"`
	Resolution     float64 `json:"resolution"`
	ResolutionDel  float64 `json:"resolution_delta"`
	AvgDelivery    float64 `json:"avg_delivery"`
	ReturnRate     float64 `json:"return_rate"`
	CancelRate     float64 `json:"cancel_rate"`
	TotalDiscount  float64 `json:"total_discount"`
	TotalGST       float64 `json:"total_gst"`
}

type orderKPIRow struct {
	GMV           float64
	TotalDiscount float64
	TotalGST      float64
	TotalOrders   int64
	ActiveCust    int64
	AOV           float64
	AvgDelivery   float64
	ReturnRate    float64
	CancelRate    float64
}

func delta(curr, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (curr - prev) / prev * 100
}

func (q *Queries) orderKPIs(start, end string, f Filters) (orderKPIRow, error) {
	var row orderKPIRow
	query := q.DB.Table("orders o").
		Joins("JOIN customers c ON o.customer_id = c.customer_id").
		Select(`COALESCE(SUM(o.final_amount),0) AS gmv,
			COALESCE(SUM(o.discount),0) AS total_discount,
			COALESCE(SUM(o.gst_amount),0) AS total_gst,
			COUNT(o.order_id) AS total_orders,
			COUNT(DISTINCT o.customer_id) AS active_cust,
			COALESCE(AVG(o.final_amount),0) AS aov,
			COALESCE(AVG(o.delivery_days),0) AS avg_delivery,
			COALESCE(SUM(CASE WHEN o.order_status = 'Returned' THEN 1.0 ELSE 0 END) * 100.0 / COUNT(*), 0) AS return_rate,
			COALESCE(SUM(CASE WHEN o.order_status = 'Cancelled' THEN 1.0 ELSE 0 END) * 100.0 / COUNT(*), 0) AS cancel_rate`).
		Where("o.order_date BETWEEN ? AND ?", start, end).
		Where("o.order_status <> ?", models.OrderProcessing)
	query = f.applySegment(f.applyOrder(query))
	if err := query.Scan(&row).Error; err != nil {
		return row, fmt.Errorf("analytics: order kpis: %w", err)
	}
	return row, nil
}

func (q *Queries) ticketKPIs(start, end string, f Filters) (csat, resolution float64, err error) {
	var row struct {
		CSAT       float64
		Resolution float64
	}
	query := q.DB.Table("tickets t").
		Joins("JOIN customers c ON t.customer_id = c.customer_id").
		Select(`COALESCE(AVG(t.csat_score),0) AS csat,
			COALESCE(SUM(CASE WHEN t.status = 'Resolved' THEN 1.0 ELSE 0 END) * 100.0 / COUNT(*), 0) AS resolution`).
		Where("t.created_date BETWEEN ? AND ?", start, end)
	if active(f.State) {
		query = query.Where("t.state = ?", f.State)
	}
	query = f.applySegment(query)
	if err := query.Scan(&row).Error; err != nil {
		return 0, 0, fmt.Errorf("analytics: ticket kpis: %w", err)
	}
	return row.CSAT, row.Resolution, nil
}

// KPIs computes the headline snapshot for [start, end] and its deltas
// against the preceding period of equal length.
func (q *Queries) KPIs(start, end string, f Filters) (*KPISnapshot, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("analytics: bad start date %q: %w", start, err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("analytics: bad end date %q: %w", end, err)
	}
	days := int(e.Sub(s).Hours() / 24)
	if days < 1 {
		days = 1
	}
	prevStart := s.AddDate(0, 0, -days).Format(dateLayout)
	prevEnd := s.AddDate(0, 0, -1).Format(dateLayout)

	curr, err := q.orderKPIs(start, end, f)
	if err != nil {
		return nil, err
	}
	prev, err := q.orderKPIs(prevStart, prevEnd, f)
	if err != nil {
		return nil, err
	}
	csatC, resC, err := q.ticketKPIs(start, end, f)
	if err != nil {
		return nil, err
	}
	csatP, resP, err := q.ticketKPIs(prevStart, prevEnd, f)
	if err != nil {
		return nil, err
	}

	return &KPISnapshot{
		GMV: curr.GMV, GMVDelta: delta(curr.GMV, prev.GMV),
		Orders: curr.TotalOrders, OrdersDelta: delta(float64(curr.TotalOrders), float64(prev.TotalOrders)),
		Customers: curr.ActiveCust, CustomersDelta: delta(float64(curr.ActiveCust), float64(prev.ActiveCust)),
		AOV: curr.AOV, AOVDelta: delta(curr.AOV, prev.AOV),
		CSAT: csatC, CSATDelta: delta(csatC, csatP),
		Resolution: resC, ResolutionDel: delta(resC, resP),
		AvgDelivery: curr.AvgDelivery,
		ReturnRate:  curr.ReturnRate,
		CancelRate:  curr.CancelRate,
		TotalDiscount: curr.TotalDiscount,
		TotalGST:      curr.TotalGST,
	}, nil
}

// DailyRevenue is one day of the revenue trend (cancelled and processing
// orders excluded).
type DailyRevenue struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Discount float64 `json:"discount"`
	Orders   int64   `json:"orders"`
	GST      float64 `json:"gst"`
}

func (q *Queries) RevenueTrend(start, end string, f Filters) ([]DailyRevenue, error) {
	var rows []DailyRevenue
	query := q.DB.Table("orders o").
		Select(`o.order_date AS date, SUM(o.final_amount) AS revenue,
			SUM(o.discount) AS discount, COUNT(*) AS orders, SUM(o.gst_amount) AS gst`).
		Where("o.order_date BETWEEN ? AND ?", start, end).
		Where("o.order_status NOT IN ?", []string{models.OrderCancelled, models.OrderProcessing}).
		Group("o.order_date").
		Order("o.order_date")
	query = f.applyOrder(query)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: revenue trend: %w", err)
	}
	return rows, nil
}

// StatePerf is one state's slice of the business.
type StatePerf struct {
	State       string  `json:"state"`
	Revenue     float64 `json:"revenue"`
	Orders      int64   `json:"orders"`
	AvgDelivery float64 `json:"avg_delivery"`
	Customers   int64   `json:"customers"`
	ReturnRate  float64 `json:"return_rate"`
}

func (q *Queries) StatePerformance(start, end string, f Filters) ([]StatePerf, error) {
	var rows []StatePerf
	query := q.DB.Table("orders o").
		Select(`o.state, SUM(o.final_amount) AS revenue, COUNT(*) AS orders,
			AVG(o.delivery_days) AS avg_delivery,
			COUNT(DISTINCT o.customer_id) AS customers,
			SUM(CASE WHEN o.order_status = 'Returned' THEN 1.0 ELSE 0 END) * 100.0 / COUNT(*) AS return_rate`).
		Where("o.order_date BETWEEN ? AND ?", start, end).
		Where("o.order_status <> ?", models.OrderProcessing).
		Group("o.state").
		Order("revenue DESC")
	if active(f.Category) {
		query = query.Where("o.category = ?", f.Category)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: state performance: %w", err)
	}
	return rows, nil
}

// CategoryPerf is one category's revenue mix entry.
type CategoryPerf struct {
	Category    string  `json:"category"`
	Revenue     float64 `json:"revenue"`
	Orders      int64   `json:"orders"`
	AOV         float64 `json:"aov"`
	Discount    float64 `json:"discount"`
	AvgDelivery float64 `json:"avg_delivery"`
}

func (q *Queries) CategoryMix(start, end string, f Filters) ([]CategoryPerf, error) {
	var rows []CategoryPerf
	query := q.DB.Table("orders o").
		Select(`o.category, SUM(o.final_amount) AS revenue, COUNT(*) AS orders,
			AVG(o.final_amount) AS aov, SUM(o.discount) AS discount,
			AVG(o.delivery_days) AS avg_delivery`).
		Where("o.order_date BETWEEN ? AND ?", start, end).
		Where("o.order_status NOT IN ?", []string{models.OrderCancelled, models.OrderProcessing}).
		Group("o.category").
		Order("revenue DESC")
	if active(f.State) {
		query = query.Where("o.state = ?", f.State)
	}
	if active(f.Zone) {
		query = query.Where("o.zone = ?", f.Zone)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: category mix: %w", err)
	}
	return rows, nil
}

// PaymentPerf is one payment method's share.
type PaymentPerf struct {
	PaymentMethod string  `json:"payment_method"`
	Orders        int64   `json:"orders"`
	Revenue       float64 `json:"revenue"`
	AOV           float64 `json:"aov"`
	CancelRate    float64 `json:"cancel_rate"`
}

func (q *Queries) PaymentAnalysis(start, end string, f Filters) ([]PaymentPerf, error) {
	var rows []PaymentPerf
	query := q.DB.Table("orders o").
		Select(`o.payment_method, COUNT(*) AS orders, SUM(o.final_amount) AS revenue,
			AVG(o.final_amount) AS aov,
			SUM(CASE WHEN o.order_status = 'Cancelled' THEN 1.0 ELSE 0 END) * 100.0 / COUNT(*) AS cancel_rate`).
		Where("o.order_date BETWEEN ? AND ?", start, end).
		Group("o.payment_method").
		Order("revenue DESC")
	if active(f.State) {
		query = query.Where("o.state = ?", f.State)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: payment analysis: %w", err)
	}
	return rows, nil
}

// ZonePerf compares the four delivery zones.
type ZonePerf struct {
	Zone        string  `json:"zone"`
	Revenue     float64 `json:"revenue"`
	Orders      int64   `json:"orders"`
	AvgDelivery float64 `json:"avg_delivery"`
	ReturnRate  float64 `json:"return_rate"`
	Customers   int64   `json:"customers"`
}

func (q *Queries) ZoneComparison(start, end string, f Filters) ([]ZonePerf, error) {
	var rows []ZonePerf
	query := q.DB.Table("orders o").
		Select(`o.zone, SUM(o.final_amount) AS revenue, COUNT(*) AS orders,
			AVG(o.delivery_days) AS avg_delivery,
			SUM(CASE WHEN o.order_status = 'Returned' THEN 1.0 ELSE 0 END) * 100.0 / COUNT(*) AS return_rate,
			COUNT(DISTINCT o.customer_id) AS customers`).
		Where("o.order_date BETWEEN ? AND ?", start, end).
		Where("o.order_status <> ?", models.OrderProcessing).
		Group("o.zone")
	if active(f.Category) {
		query = query.Where("o.category = ?", f.Category)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: zone comparison: %w", err)
	}
	return rows, nil
}

// AgentPerf ranks agents by resolved tickets.
type AgentPerf struct {
	AgentName      string  `json:"agent_name"`
	Team           string  `json:"team"`
	Shift          string  `json:"shift"`
	Total          int64   `json:"total"`
	Resolved       int64   `json:"resolved"`
	Escalated      int64   `json:"escalated"`
	AvgResolutionH float64 `json:"avg_resolution_h"`
	AvgFirstRespH  float64 `json:"avg_frt_h"`
	AvgCSAT        float64 `json:"avg_csat"`
	RepeatContacts int64   `json:"repeat_contacts"`
}

func (q *Queries) AgentPerformance(start, end string, f Filters) ([]AgentPerf, error) {
	var rows []AgentPerf
	query := q.DB.Table("agents a").
		Joins("JOIN tickets t ON a.agent_id = t.agent_id").
		Select(`a.agent_name, a.team, a.shift, COUNT(t.ticket_id) AS total,
			SUM(CASE WHEN t.status = 'Resolved' THEN 1 ELSE 0 END) AS resolved,
			SUM(CASE WHEN t.status = 'Escalated' THEN 1 ELSE 0 END) AS escalated,
			AVG(t.resolution_hours) AS avg_resolution_h,
			AVG(t.first_response_h) AS avg_first_resp_h,
			AVG(t.csat_score) AS avg_csat,
			SUM(CASE WHEN t.is_repeat THEN 1 ELSE 0 END) AS repeat_contacts`).
		Where("t.created_date BETWEEN ? AND ?", start, end).
		Group("a.agent_id, a.agent_name, a.team, a.shift").
		Order("resolved DESC")
	if active(f.State) {
		query = query.Where("t.state = ?", f.State)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: agent performance: %w", err)
	}
	return rows, nil
}

// TicketBreakdown is the ticket volume split by category and priority.
type TicketBreakdown struct {
	TicketCategory string  `json:"ticket_category"`
	Priority       string  `json:"priority"`
	Total          int64   `json:"total"`
	AvgResolutionH float64 `json:"avg_res_h"`
	AvgFirstRespH  float64 `json:"avg_frt_h"`
	AvgCSAT        float64 `json:"avg_csat"`
	RepeatContacts int64   `json:"repeat_contacts"`
	Escalated      int64   `json:"escalated"`
}

func (q *Queries) TicketAnalytics(start, end string, f Filters) ([]TicketBreakdown, error) {
	var rows []TicketBreakdown
	query := q.DB.Table("tickets t").
		Select(`t.ticket_category, t.priority, COUNT(*) AS total,
			AVG(t.resolution_hours) AS avg_resolution_h,
			AVG(t.first_response_h) AS avg_first_resp_h,
			AVG(t.csat_score) AS avg_csat,
			SUM(CASE WHEN t.is_repeat THEN 1 ELSE 0 END) AS repeat_contacts,
			SUM(CASE WHEN t.status = 'Escalated' THEN 1 ELSE 0 END) AS escalated`).
		Where("t.created_date BETWEEN ? AND ?", start, end).
		Group("t.ticket_category, t.priority").
		Order("total DESC")
	if active(f.State) {
		query = query.Where("t.state = ?", f.State)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: ticket analytics: %w", err)
	}
	return rows, nil
}

// TopCustomer is one row of the lifetime-value leaderboard.
type TopCustomer struct {
	FullName      string  `json:"full_name"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Tier          string  `json:"tier"`
	Segment       string  `json:"segment"`
	AgeGroup      string  `json:"age_group"`
	Orders        int64   `json:"orders"`
	LifetimeValue float64 `json:"lifetime_value"`
	AOV           float64 `json:"aov"`
}

func (q *Queries) TopCustomers(start, end string, f Filters, limit int) ([]TopCustomer, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []TopCustomer
	query := q.DB.Table("customers c").
		Joins("JOIN orders o ON c.customer_id = o.customer_id").
		Select(`c.full_name, c.city, c.state, c.tier, c.segment, c.age_group,
			COUNT(DISTINCT o.order_id) AS orders,
			SUM(o.final_amount) AS lifetime_value,
			AVG(o.final_amount) AS aov`).
		Where("o.order_date BETWEEN ? AND ?", start, end).
		Where("o.order_status NOT IN ?", []string{models.OrderCancelled, models.OrderProcessing}).
		Group("c.customer_id, c.full_name, c.city, c.state, c.tier, c.segment, c.age_group").
		Order("lifetime_value DESC").
		Limit(limit)
	if active(f.State) {
		query = query.Where("c.state = ?", f.State)
	}
	query = f.applySegment(query)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: top customers: %w", err)
	}
	return rows, nil
}
