package sales

import (
	"time"

	"gorm.io/datatypes"
)

// OrderItem represents sales_order_item table. ProductName and
// VariantAttributes are snapshots captured at write time, decoupled
// from later catalog edits. VariantID 0 means no variant; the pair
// (order_id, product_id, variant_id) is the natural line key.
type OrderItem struct {
	ID                uint              `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	OrderID           uint              `gorm:"column:order_id;uniqueIndex:idx_order_item_key;not null" json:"order_id"`
	ProductID         uint              `gorm:"column:product_id;uniqueIndex:idx_order_item_key;index;not null" json:"product_id"`
	VariantID         uint              `gorm:"column:variant_id;uniqueIndex:idx_order_item_key;not null;default:0" json:"variant_id,omitempty"`
	Quantity          int               `gorm:"column:quantity;not null;default:0" json:"quantity"`
	UnitPrice         float64           `gorm:"column:unit_price;type:decimal(12,4);not null;default:0" json:"unit_price"`
	LineTotal         float64           `gorm:"column:line_total;type:decimal(12,4);not null;default:0" json:"line_total"`
	ProductName       string            `gorm:"column:product_name;type:varchar(255)" json:"product_name"`
	VariantAttributes datatypes.JSONMap `gorm:"column:variant_attributes" json:"variant_attributes,omitempty"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "sales_order_item"
}
