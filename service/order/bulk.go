package order

import (
	salesEntity "shopcore.GO/model/entity/sales"
)

// MaxBulkOrders caps one bulk call. Larger sets must be split by the
// caller.
const MaxBulkOrders = 1000

// BulkResult reports what a bulk update touched.
type BulkResult struct {
	Requested int   `json:"requested"`
	Affected  int64 `json:"affected"`
}

// BulkUpdateOrders writes the patch to every matching order of the
// store in one pass. Item contents are never edited here; inventory
// side effects fire only for the cancelled and delivered transitions,
// group-summed per (product_id, variant_id) across all affected
// orders. Affected may be less than requested when ids don't resolve
// inside the store.
func (s *Service) BulkUpdateOrders(storeID uint, orderIDs []uint, p *Patch) (*BulkResult, error) {
	if len(orderIDs) == 0 {
		return nil, &ValidationError{Reason: "order_ids is required"}
	}
	if len(orderIDs) > MaxBulkOrders {
		return nil, &ValidationError{Reason: "too many order ids (max 1000)"}
	}
	if p == nil || !p.HasOrderFields() {
		return nil, &ValidationError{Reason: "at least one patch field is required"}
	}
	if p.Items != nil {
		return nil, &ValidationError{Reason: "items cannot be patched in bulk"}
	}

	// Resolve first: the aggregate item sums below must cover exactly
	// the rows the UPDATE touches.
	ids, err := s.orders.ResolveIDsForStore(storeID, orderIDs)
	if err != nil {
		return nil, err
	}

	affected, err := s.orders.BulkUpdateFields(storeID, orderIDs, p.orderFields())
	if err != nil {
		return nil, err
	}

	if p.Status != nil && len(ids) > 0 {
		switch *p.Status {
		case salesEntity.StatusCancelled:
			s.applyBulkEffect(ids, +1, -1)
			s.events.BulkStatusChanged(storeID, ids, *p.Status)
		case salesEntity.StatusDelivered:
			s.applyBulkEffect(ids, 0, -1)
			s.events.BulkStatusChanged(storeID, ids, *p.Status)
		}
	}

	return &BulkResult{Requested: len(orderIDs), Affected: affected}, nil
}

func (s *Service) applyBulkEffect(orderIDs []uint, availPerUnit, reservedPerUnit int) {
	sums, err := s.orders.SumItemQuantities(orderIDs)
	if err != nil {
		logger.Error().Err(err).Msg("bulk inventory effect skipped: item sum failed")
		return
	}
	for _, sum := range sums {
		key := itemKey(sum.ProductID, sum.VariantID)
		_ = s.ledger.Adjust(key, availPerUnit*sum.Quantity, reservedPerUnit*sum.Quantity)
	}
}
