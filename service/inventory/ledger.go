package inventory

import (
	"os"

	"github.com/rs/zerolog"

	inventoryRepo "shopcore.GO/model/repository/inventory"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "inventory_ledger").Logger()

// ItemKey identifies an inventory position: a product plus an optional
// variant. VariantID 0 means the product-level position.
type ItemKey struct {
	ProductID uint
	VariantID uint
}

// Ledger adjusts available/reserved counters per inventory position.
// It never creates records; positions without a record (untracked
// catalog rows) make Adjust a logged no-op.
type Ledger struct {
	repo *inventoryRepo.InventoryRepository
}

func NewLedger(repo *inventoryRepo.InventoryRepository) *Ledger {
	return &Ledger{repo: repo}
}

// Adjust applies availableDelta and reservedDelta to the position
// behind key. Both counters clamp at zero. The write is a single
// statement, so concurrent adjustments on the same key don't lose
// increments.
func (l *Ledger) Adjust(key ItemKey, availableDelta, reservedDelta int) error {
	affected, err := l.repo.AdjustQuantities(key.ProductID, key.VariantID, availableDelta, reservedDelta)
	if err != nil {
		logger.Error().Err(err).
			Uint("product_id", key.ProductID).
			Uint("variant_id", key.VariantID).
			Int("available_delta", availableDelta).
			Int("reserved_delta", reservedDelta).
			Msg("inventory adjust failed")
		return err
	}
	if affected == 0 {
		logger.Warn().
			Uint("product_id", key.ProductID).
			Uint("variant_id", key.VariantID).
			Msg("no inventory record for key, adjust skipped")
	}
	return nil
}
