package order

import (
	salesEntity "shopcore.GO/model/entity/sales"
	salesRepo "shopcore.GO/model/repository/sales"
	inventoryService "shopcore.GO/service/inventory"
)

// Reconciler diffs an order's stored line items against a desired set
// keyed by (product_id, variant_id), applies the inventory deltas, and
// upserts/deletes rows so the stored items match the desired set.
type Reconciler struct {
	orders *salesRepo.OrderRepository
	ledger *inventoryService.Ledger
}

func NewReconciler(orders *salesRepo.OrderRepository, ledger *inventoryService.Ledger) *Reconciler {
	return &Reconciler{orders: orders, ledger: ledger}
}

func itemKey(productID, variantID uint) inventoryService.ItemKey {
	return inventoryService.ItemKey{ProductID: productID, VariantID: variantID}
}

// Reconcile brings the order's rows to the desired set and returns the
// final items. Inventory adjustments that fail are logged by the
// ledger and do not roll back the row changes already applied.
//
// Removed line: its full reservation returns to availability.
// Changed quantity d = new-old: d units move available -> reserved.
// New line: a fresh reservation of its quantity.
func (r *Reconciler) Reconcile(orderID uint, existing []salesEntity.OrderItem, desired []ItemInput) ([]salesEntity.OrderItem, error) {
	byKey := make(map[inventoryService.ItemKey]salesEntity.OrderItem, len(existing))
	for _, it := range existing {
		byKey[itemKey(it.ProductID, it.VariantID)] = it
	}

	// Collapse duplicate desired keys, last entry wins. The upsert
	// stores one row per key, so inventory must move once per key too.
	keyAt := make(map[inventoryService.ItemKey]int, len(desired))
	merged := make([]ItemInput, 0, len(desired))
	for _, in := range desired {
		key := itemKey(in.ProductID, in.VariantID)
		if at, ok := keyAt[key]; ok {
			merged[at] = in
			continue
		}
		keyAt[key] = len(merged)
		merged = append(merged, in)
	}
	desired = merged

	// Removals first: release the reservation, then drop the row.
	for _, it := range existing {
		key := itemKey(it.ProductID, it.VariantID)
		if _, ok := keyAt[key]; ok {
			continue
		}
		_ = r.ledger.Adjust(key, +it.Quantity, -it.Quantity)
		if err := r.orders.DeleteItem(orderID, it.ProductID, it.VariantID); err != nil {
			return nil, err
		}
	}

	// Additions and quantity changes, in desired order.
	rows := make([]salesEntity.OrderItem, 0, len(desired))
	for _, in := range desired {
		key := itemKey(in.ProductID, in.VariantID)
		row, exists := byKey[key]
		if exists {
			if d := in.Quantity - row.Quantity; d != 0 {
				_ = r.ledger.Adjust(key, -d, +d)
			}
		} else {
			_ = r.ledger.Adjust(key, -in.Quantity, +in.Quantity)
			row = salesEntity.OrderItem{
				OrderID:   orderID,
				ProductID: in.ProductID,
				VariantID: in.VariantID,
			}
		}
		row.ID = 0 // upsert resolves rows by the natural key
		row.Quantity = in.Quantity
		row.UnitPrice = in.UnitPrice
		row.LineTotal = float64(in.Quantity) * in.UnitPrice
		row.ProductName = in.ProductName
		if in.VariantAttributes != nil {
			row.VariantAttributes = in.VariantAttributes
		}
		rows = append(rows, row)
	}

	if err := r.orders.UpsertItems(rows); err != nil {
		return nil, err
	}
	return r.orders.ListItems(orderID)
}
