package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopcore.GO/api"
	"shopcore.GO/config"
	"shopcore.GO/core/cache"
	catalogRepo "shopcore.GO/model/repository/catalog"
	salesRepo "shopcore.GO/model/repository/sales"
	metricsService "shopcore.GO/service/metrics"
)

// cacheTTL keeps dashboard reads cheap without hiding fresh writes
// for long. Writers also invalidate explicitly.
const cacheTTL = 60

func init() {
	api.RegisterModule(RegisterMetricsRoutes)
}

func RegisterMetricsRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/metrics")

	// GET /api/metrics/dashboard?store_id=&period=
	g.GET("/dashboard", func(c echo.Context) error {
		start := time.Now()

		raw := c.QueryParam("store_id")
		if raw == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "store_id is required"})
		}
		sid, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "store_id must be a number"})
		}
		period := metricsService.Period(c.QueryParam("period"))
		if period == "" {
			period = metricsService.PeriodMonthly
		}
		if !period.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("unknown period %q", period)})
		}

		cacheKey := fmt.Sprintf("metrics:dashboard:%d:%s", sid, period)
		if cached, ok := lookupCached(cacheKey); ok {
			c.Response().Header().Set("X-Cache", "hit")
			return c.JSON(http.StatusOK, cached)
		}

		m, err := computeDashboard(db, uint(sid), period)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		storeCached(cacheKey, m)

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Cache", "miss")
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, m)
	})
}

func computeDashboard(db *gorm.DB, storeID uint, period metricsService.Period) (*metricsService.DashboardMetrics, error) {
	orders, err := salesRepo.NewOrderRepository(db)
	if err != nil {
		return nil, err
	}
	orderRows, err := orders.ListForStore(storeID)
	if err != nil {
		return nil, err
	}
	products, err := catalogRepo.NewProductRepository(db).ListWithVariants(storeID)
	if err != nil {
		return nil, err
	}
	return metricsService.Aggregate(orderRows, products, period, time.Now())
}

// lookupCached checks Redis first, then the in-process cache.
func lookupCached(key string) (*metricsService.DashboardMetrics, bool) {
	if config.RedisClient != nil {
		raw, err := config.RedisClient.Get(config.RedisCtx(), key).Bytes()
		if err == nil {
			var m metricsService.DashboardMetrics
			if json.Unmarshal(raw, &m) == nil {
				return &m, true
			}
		}
	}
	if v, ok := cache.GetInstance().Get(key); ok {
		if m, isMetrics := v.(*metricsService.DashboardMetrics); isMetrics {
			return m, true
		}
	}
	return nil, false
}

func storeCached(key string, m *metricsService.DashboardMetrics) {
	if config.RedisClient != nil {
		if raw, err := json.Marshal(m); err == nil {
			config.RedisClient.Set(config.RedisCtx(), key, raw, cacheTTL*time.Second)
		}
	}
	cache.GetInstance().Set(key, m, cacheTTL, []string{"metrics"})
}
