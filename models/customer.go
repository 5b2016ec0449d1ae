package models

// Customer lifecycle statuses. Tier is a separate, derived field.
const (
	CustomerActive  = "Active"
	CustomerChurned = "Churned"
	CustomerAtRisk  = "At-Risk"
)

// Customer is one synthetic account. The tier column is derived: it is
// written once by the tier-resolution pass from cumulative delivered-order
// spend, never set directly. Every other field is immutable after creation.
type Customer struct {
	CustomerID string  `gorm:"column:customer_id;primaryKey" json:"customer_id"`
	FullName   string  `gorm:"column:full_name;not null" json:"full_name"`
	Email      string  `gorm:"column:email" json:"email"`
	Phone      string  `gorm:"column:phone" json:"phone"`
	City       string  `gorm:"column:city" json:"city"`
	State      string  `gorm:"column:state;index" json:"state"`
	Zone       string  `gorm:"column:zone" json:"zone"`
	Pincode    string  `gorm:"column:pincode" json:"pincode"`
	Segment    string  `gorm:"column:segment" json:"segment"`
	Tier       string  `gorm:"column:tier" json:"tier"`
	JoinDate   string  `gorm:"column:join_date" json:"join_date"`
	Status     string  `gorm:"column:status" json:"status"`
	AgeGroup   string  `gorm:"column:age_group" json:"age_group"`
	Orders     []Order `gorm:"foreignKey:CustomerID;references:CustomerID" json:"orders,omitempty"`
}

func (Customer) TableName() string { return "customers" }
