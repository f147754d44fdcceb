package jobs

import (
	"os"

	"github.com/rs/zerolog"

	"shopcore.GO/config"
	inventoryRepo "shopcore.GO/model/repository/inventory"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("job", "lowstockscan").Logger()

// LowStockScanJob walks the store's inventory and logs every tracked
// position at or under its threshold. Runs hourly; see config.CronJobs.
func LowStockScanJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		logger.Error().Err(err).Msg("database connection failed")
		return
	}
	repo, err := inventoryRepo.NewInventoryRepository(db)
	if err != nil {
		logger.Error().Err(err).Msg("repository init failed")
		return
	}

	config.LoadAppConfig()
	storeID := config.AppConfig.DefaultStoreID

	records, err := repo.ListLowStock(storeID)
	if err != nil {
		logger.Error().Err(err).Msg("low stock scan failed")
		return
	}
	outOfStock := 0
	for _, rec := range records {
		if rec.IsOutOfStock() {
			outOfStock++
		}
		logger.Warn().
			Uint("product_id", rec.ProductID).
			Uint("variant_id", rec.VariantID).
			Int("available", rec.QuantityAvailable).
			Int("threshold", rec.LowStockThreshold).
			Msg("low stock")
	}
	total, err := repo.TotalAvailableUnits(storeID)
	if err != nil {
		logger.Error().Err(err).Msg("available units total failed")
	}
	logger.Info().
		Uint("store_id", storeID).
		Int("low_stock", len(records)).
		Int("out_of_stock", outOfStock).
		Int64("available_units", total).
		Msg("low stock scan finished")
}
