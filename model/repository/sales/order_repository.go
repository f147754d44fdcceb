package sales

import (
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	salesEntity "shopcore.GO/model/entity/sales"
)

type OrderRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewOrderRepository(db *gorm.DB) (*OrderRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &OrderRepository{db: db, sqlDB: sqlDB}, nil
}

// FindByIDForStore resolves an order inside its owning store.
// Returns gorm.ErrRecordNotFound when the id does not resolve there.
func (r *OrderRepository) FindByIDForStore(orderID, storeID uint) (*salesEntity.Order, error) {
	var ord salesEntity.Order
	err := r.db.Where("id = ? AND store_id = ?", orderID, storeID).First(&ord).Error
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

// ListItems returns the stored line items of an order.
func (r *OrderRepository) ListItems(orderID uint) ([]salesEntity.OrderItem, error) {
	var items []salesEntity.OrderItem
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}

// UpsertItems inserts or updates line items on their natural key
// (order_id, product_id, variant_id).
func (r *OrderRepository) UpsertItems(items []salesEntity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	upsert := clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}, {Name: "product_id"}, {Name: "variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"quantity", "unit_price", "line_total", "product_name", "variant_attributes", "updated_at",
		}),
	}
	return r.db.Clauses(upsert).Create(&items).Error
}

// DeleteItem removes one line item by its natural key.
func (r *OrderRepository) DeleteItem(orderID, productID, variantID uint) error {
	return r.db.
		Where("order_id = ? AND product_id = ? AND variant_id = ?", orderID, productID, variantID).
		Delete(&salesEntity.OrderItem{}).Error
}

// UpdateFields writes a sparse column patch to one order row.
func (r *OrderRepository) UpdateFields(orderID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&salesEntity.Order{}).Where("id = ?", orderID).Updates(fields).Error
}

// BulkUpdateFields writes a sparse column patch to many orders in one
// pass, scoped to the store. Returns the number of rows affected.
func (r *OrderRepository) BulkUpdateFields(storeID uint, orderIDs []uint, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&salesEntity.Order{}).
		Where("store_id = ? AND id IN ?", storeID, orderIDs).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// ResolveIDsForStore filters orderIDs down to the ids that exist in
// the store. Order of the result is not significant.
func (r *OrderRepository) ResolveIDsForStore(storeID uint, orderIDs []uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&salesEntity.Order{}).
		Where("store_id = ? AND id IN ?", storeID, orderIDs).
		Pluck("id", &ids).Error
	return ids, err
}

// ItemQuantitySum is one group-summed line key across a set of orders.
type ItemQuantitySum struct {
	ProductID uint
	VariantID uint
	Quantity  int
}

// SumItemQuantities group-sums item quantities by (product_id,
// variant_id) across the given orders.
func (r *OrderRepository) SumItemQuantities(orderIDs []uint) ([]ItemQuantitySum, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Table("sales_order_item").
		Select("product_id, variant_id, SUM(quantity) AS quantity").
		Where("order_id IN ?", orderIDs).
		Group("product_id, variant_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []ItemQuantitySum
	for rows.Next() {
		var s ItemQuantitySum
		if err := rows.Scan(&s.ProductID, &s.VariantID, &s.Quantity); err != nil {
			continue
		}
		sums = append(sums, s)
	}
	return sums, rows.Err()
}

// ListForStore returns all orders of a store with items preloaded.
// Feeds the metrics aggregator.
func (r *OrderRepository) ListForStore(storeID uint) ([]salesEntity.Order, error) {
	var orders []salesEntity.Order
	err := r.db.Preload("Items").Where("store_id = ?", storeID).Order("id").Find(&orders).Error
	return orders, err
}

// CountByStatus returns order counts per status for a store.
func (r *OrderRepository) CountByStatus(storeID uint) (map[string]int, error) {
	rows, err := r.db.Table("sales_order").
		Select("status, COUNT(*)").
		Where("store_id = ?", storeID).
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			continue
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
