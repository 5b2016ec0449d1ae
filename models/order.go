package models

// Order statuses referenced by the generator and the query layer.
const (
	OrderDelivered  = "Delivered"
	OrderShipped    = "Shipped"
	OrderProcessing = "Processing"
	OrderCancelled  = "Cancelled"
	OrderReturned   = "Returned"
)

// Order is one synthetic purchase. City/state/zone are copied from the
// owning customer at creation time as a snapshot, so order history stays
// accurate regardless of what happens to the customer row later. FinalAmount = round(Amount + GSTAmount - Discount, 2).
// IsReturned holds exactly when OrderStatus is Returned.
type Order struct {
	OrderID       string  `gorm:"column:order_id;primaryKey" json:"order_id"`
	CustomerID    string  `gorm:"column:customer_id;index" json:"customer_id"`
	OrderDate     string  `gorm:"column:order_date;index" json:"order_date"`
	DeliveryDate  string  `gorm:"column:delivery_date" json:"delivery_date"`
	Amount        float64 `gorm:"column:amount" json:"amount"`
	GSTAmount     float64 `gorm:"column:gst_amount" json:"gst_amount"`
	Discount      float64 `gorm:"column:discount" json:"discount"`
	FinalAmount   float64 `gorm:"column:final_amount" json:"final_amount"`
	Category      string  `gorm:"column:category" json:"category"`
	ProductName   string  `gorm:"column:product_name" json:"product_name"`
	PaymentMethod string  `gorm:"column:payment_method" json:"payment_method"`
	OrderStatus   string  `gorm:"column:order_status" json:"order_status"`
	City          string  `gorm:"column:city" json:"city"`
	State         string  `gorm:"column:state;index" json:"state"`
	Zone          string  `gorm:"column:zone" json:"zone"`
	DeliveryDays  int     `gorm:"column:delivery_days" json:"delivery_days"`
	IsReturned    bool    `gorm:"column:is_returned" json:"is_returned"`
}

func (Order) TableName() string { return "orders" }
