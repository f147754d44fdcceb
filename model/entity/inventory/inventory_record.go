package inventory

import "time"

// InventoryRecord represents inventory_record table: one row per
// (product, variant) position. VariantID 0 is the product-level
// position. Counters never go below zero — adjustments clamp.
type InventoryRecord struct {
	ID                uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	StoreID           uint      `gorm:"column:store_id;index;not null" json:"store_id"`
	ProductID         uint      `gorm:"column:product_id;uniqueIndex:idx_inventory_key;not null" json:"product_id"`
	VariantID         uint      `gorm:"column:variant_id;uniqueIndex:idx_inventory_key;not null;default:0" json:"variant_id,omitempty"`
	QuantityAvailable int       `gorm:"column:quantity_available;not null;default:0" json:"quantity_available"`
	QuantityReserved  int       `gorm:"column:quantity_reserved;not null;default:0" json:"quantity_reserved"`
	LowStockThreshold int       `gorm:"column:low_stock_threshold;not null;default:0" json:"low_stock_threshold"`
	// No gorm default here: a default on a bool makes Create skip the
	// zero value, so false rows would persist as true.
	TrackInventory    bool      `gorm:"column:track_inventory;not null" json:"track_inventory"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InventoryRecord) TableName() string {
	return "inventory_record"
}

// IsLowStock reports whether the position is at or under its threshold.
// Only meaningful when tracking is enabled.
func (r *InventoryRecord) IsLowStock() bool {
	return r.TrackInventory && r.QuantityAvailable <= r.LowStockThreshold
}

// IsOutOfStock reports whether a tracked position has no sellable units.
func (r *InventoryRecord) IsOutOfStock() bool {
	return r.TrackInventory && r.QuantityAvailable <= 0
}
