package models

// Ticket statuses referenced in code.
const (
	TicketResolved  = "Resolved"
	TicketOpen      = "Open"
	TicketEscalated = "Escalated"
	TicketPending   = "Pending"
)

// Ticket is one support case. Customer, agent and order are sampled
// independently of each other, so a ticket's order need not belong to its
// customer. That is documented behavior of the dataset, not a defect.
// ResolvedDate = CreatedDate + ResolutionHours; FirstResponseH is always
// <= ResolutionHours; CSATScore is in [1, 5].
type Ticket struct {
	TicketID       string  `gorm:"column:ticket_id;primaryKey" json:"ticket_id"`
	CustomerID     string  `gorm:"column:customer_id;index" json:"customer_id"`
	AgentID        string  `gorm:"column:agent_id;index" json:"agent_id"`
	OrderID        string  `gorm:"column:order_id" json:"order_id"`
	CreatedDate    string  `gorm:"column:created_date;index" json:"created_date"`
	ResolvedDate   string  `gorm:"column:resolved_date" json:"resolved_date"`
	TicketCategory string  `gorm:"column:ticket_category" json:"ticket_category"`
	Priority       string  `gorm:"column:priority" json:"priority"`
	Status         string  `gorm:"column:status" json:"status"`
	CSATScore      float64 `gorm:"column:csat_score" json:"csat_score"`
	ResolutionH    float64 `gorm:"column:resolution_hours" json:"resolution_hours"`
	FirstResponseH float64 `gorm:"column:first_response_h" json:"first_response_h"`
	IsRepeat       bool    `gorm:"column:is_repeat" json:"is_repeat"`
	State          string  `gorm:"column:state" json:"state"`
}

func (Ticket) TableName() string { return "tickets" }
