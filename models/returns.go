package models

// Return is the refund record for a returned order. Exactly one Return
// exists per order with status Returned, and none otherwise. ReturnDate
// falls within 1–7 days after the order date, and RefundAmount never exceeds
// the order's final amount.
type Return struct {
	ReturnID     string  `gorm:"column:return_id;primaryKey" json:"return_id"`
	OrderID      string  `gorm:"column:order_id;index" json:"order_id"`
	CustomerID   string  `gorm:"column:customer_id" json:"customer_id"`
	ReturnDate   string  `gorm:"column:return_date;index" json:"return_date"`
	Reason       string  `gorm:"column:reason" json:"reason"`
	RefundAmount float64 `gorm:"column:refund_amount" json:"refund_amount"`
	RefundStatus string  `gorm:"column:refund_status" json:"refund_status"`
	State        string  `gorm:"column:state" json:"state"`
}

func (Return) TableName() string { return "returns" }
