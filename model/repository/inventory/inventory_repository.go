package inventory

import (
	"database/sql"

	"gorm.io/gorm"

	inventoryEntity "shopcore.GO/model/entity/inventory"
)

type InventoryRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewInventoryRepository(db *gorm.DB) (*InventoryRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &InventoryRepository{db: db, sqlDB: sqlDB}, nil
}

// FindByKey resolves the inventory position for a product/variant pair.
// A non-zero variantID resolves by variant alone; otherwise the
// product-level row (variant_id = 0) is used.
func (r *InventoryRepository) FindByKey(productID, variantID uint) (*inventoryEntity.InventoryRecord, error) {
	var rec inventoryEntity.InventoryRecord
	q := r.db
	if variantID != 0 {
		q = q.Where("variant_id = ?", variantID)
	} else {
		q = q.Where("product_id = ? AND variant_id = 0", productID)
	}
	if err := q.First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// AdjustQuantities applies both deltas in a single statement so
// concurrent adjustments never lose increments. Counters clamp at
// zero. Returns the number of rows touched; 0 means no inventory
// record exists for the key.
func (r *InventoryRepository) AdjustQuantities(productID, variantID uint, availableDelta, reservedDelta int) (int64, error) {
	q := r.db.Model(&inventoryEntity.InventoryRecord{})
	if variantID != 0 {
		q = q.Where("variant_id = ?", variantID)
	} else {
		q = q.Where("product_id = ? AND variant_id = 0", productID)
	}
	res := q.Updates(map[string]interface{}{
		"quantity_available": gorm.Expr(
			"CASE WHEN quantity_available + ? < 0 THEN 0 ELSE quantity_available + ? END",
			availableDelta, availableDelta),
		"quantity_reserved": gorm.Expr(
			"CASE WHEN quantity_reserved + ? < 0 THEN 0 ELSE quantity_reserved + ? END",
			reservedDelta, reservedDelta),
	})
	return res.RowsAffected, res.Error
}

// ListForStore returns all inventory records for a store.
func (r *InventoryRepository) ListForStore(storeID uint) ([]inventoryEntity.InventoryRecord, error) {
	var recs []inventoryEntity.InventoryRecord
	err := r.db.Where("store_id = ?", storeID).Find(&recs).Error
	return recs, err
}

// ListLowStock returns tracked records at or under their threshold.
func (r *InventoryRepository) ListLowStock(storeID uint) ([]inventoryEntity.InventoryRecord, error) {
	var recs []inventoryEntity.InventoryRecord
	err := r.db.
		Where("store_id = ? AND track_inventory = ? AND quantity_available <= low_stock_threshold", storeID, true).
		Find(&recs).Error
	return recs, err
}

// TotalAvailableUnits sums sellable units across a store.
// Uses raw SQL for minimal overhead.
func (r *InventoryRepository) TotalAvailableUnits(storeID uint) (int64, error) {
	const query = `SELECT COALESCE(SUM(quantity_available), 0) FROM inventory_record WHERE store_id = ?`
	var total int64
	err := r.sqlDB.QueryRow(query, storeID).Scan(&total)
	return total, err
}
