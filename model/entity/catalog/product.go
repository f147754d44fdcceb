package catalog

import (
	"time"

	"gorm.io/datatypes"

	inventoryEntity "shopcore.GO/model/entity/inventory"
)

// Product represents catalog_product table. The catalog is owned by an
// external collaborator; this service only reads it for costing and
// stock roll-ups.
type Product struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	StoreID   uint      `gorm:"column:store_id;index;not null" json:"store_id"`
	SKU       string    `gorm:"column:sku;type:varchar(64);index;not null" json:"sku"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"column:price;type:decimal(12,4);not null;default:0" json:"price"`
	Cost      float64   `gorm:"column:cost;type:decimal(12,4);not null;default:0" json:"cost"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	// Product-level inventory position (variant_id = 0); nil for
	// products whose stock is tracked per variant.
	Inventory *inventoryEntity.InventoryRecord `gorm:"foreignKey:ProductID;references:ID" json:"inventory,omitempty"`
}

func (Product) TableName() string {
	return "catalog_product"
}

// UnitCost returns the variant cost when set, else the product cost.
func (p *Product) UnitCost(v *ProductVariant) float64 {
	if v != nil && v.Cost != nil {
		return *v.Cost
	}
	return p.Cost
}

// ProductVariant represents catalog_product_variant table.
type ProductVariant struct {
	ID         uint              `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	ProductID  uint              `gorm:"column:product_id;index;not null" json:"product_id"`
	SKU        string            `gorm:"column:sku;type:varchar(64);index" json:"sku"`
	Attributes datatypes.JSONMap `gorm:"column:attributes" json:"attributes,omitempty"`
	Price      *float64          `gorm:"column:price;type:decimal(12,4)" json:"price,omitempty"`
	Cost       *float64          `gorm:"column:cost;type:decimal(12,4)" json:"cost,omitempty"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Inventory *inventoryEntity.InventoryRecord `gorm:"foreignKey:VariantID;references:ID" json:"inventory,omitempty"`
}

func (ProductVariant) TableName() string {
	return "catalog_product_variant"
}
