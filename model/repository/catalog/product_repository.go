package catalog

import (
	"gorm.io/gorm"

	catalogEntity "shopcore.GO/model/entity/catalog"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByID returns one product with variants and inventory preloaded.
func (r *ProductRepository) FindByID(productID uint) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	err := r.db.
		Preload("Variants").
		Preload("Variants.Inventory").
		Preload("Inventory", "variant_id = 0").
		First(&p, productID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListWithVariants returns a store's catalog with variants and their
// inventory positions preloaded. Feeds the metrics aggregator.
func (r *ProductRepository) ListWithVariants(storeID uint) ([]catalogEntity.Product, error) {
	var products []catalogEntity.Product
	err := r.db.
		Preload("Variants").
		Preload("Variants.Inventory").
		Preload("Inventory", "variant_id = 0").
		Where("store_id = ?", storeID).
		Order("id").
		Find(&products).Error
	return products, err
}
