package sales

import "time"

// Order status values. Transitions between these drive inventory
// side effects — see service/order.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Payment status values. Orthogonal to order status; no inventory effect.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentFailed   = "failed"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

// Order represents sales_order table
type Order struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	StoreID        uint      `gorm:"column:store_id;index;not null" json:"store_id"`
	OrderNumber    string    `gorm:"column:order_number;type:varchar(64);uniqueIndex" json:"order_number"`
	Status         string    `gorm:"column:status;type:varchar(32);index;not null;default:pending" json:"status"`
	PaymentStatus  string    `gorm:"column:payment_status;type:varchar(32);index;not null;default:pending" json:"payment_status"`
	DeliveryOption string    `gorm:"column:delivery_option;type:varchar(64)" json:"delivery_option,omitempty"`
	PaymentMethod  string    `gorm:"column:payment_method;type:varchar(64)" json:"payment_method,omitempty"`
	Subtotal       float64   `gorm:"column:subtotal;type:decimal(12,4);not null;default:0" json:"subtotal"`
	Tax            float64   `gorm:"column:tax;type:decimal(12,4);not null;default:0" json:"tax"`
	ShippingFee    float64   `gorm:"column:shipping_fee;type:decimal(12,4);not null;default:0" json:"shipping_fee"`
	Discount       float64   `gorm:"column:discount;type:decimal(12,4);not null;default:0" json:"discount"`
	Total          float64   `gorm:"column:total;type:decimal(12,4);not null;default:0" json:"total"`
	CustomerID     string    `gorm:"column:customer_id;type:varchar(64);index" json:"customer_id,omitempty"`
	CustomerName   string    `gorm:"column:customer_name;type:varchar(255)" json:"customer_name,omitempty"`
	Notes          string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "sales_order"
}
