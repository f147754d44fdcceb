package orders

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopcore.GO/api"
	"shopcore.GO/config"
	"shopcore.GO/core/cache"
	inventoryRepo "shopcore.GO/model/repository/inventory"
	salesRepo "shopcore.GO/model/repository/sales"
	inventoryService "shopcore.GO/service/inventory"
	orderService "shopcore.GO/service/order"
)

func init() {
	api.RegisterModule(RegisterOrderRoutes)
}

func buildService(db *gorm.DB) (*orderService.Service, error) {
	orders, err := salesRepo.NewOrderRepository(db)
	if err != nil {
		return nil, err
	}
	inv, err := inventoryRepo.NewInventoryRepository(db)
	if err != nil {
		return nil, err
	}
	ledger := inventoryService.NewLedger(inv)
	events := orderService.NewEventEmitter(config.KafkaWriter)
	return orderService.NewService(orders, ledger, events), nil
}

func storeID(c echo.Context) (uint, error) {
	raw := c.QueryParam("store_id")
	if raw == "" {
		raw = c.Request().Header.Get("X-Store-ID")
	}
	if raw == "" {
		return 0, errors.New("store_id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("store_id must be a number")
	}
	return uint(id), nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, orderService.ErrNotFound):
		return http.StatusNotFound
	case orderService.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// invalidateMetrics drops cached dashboard snapshots after a write.
func invalidateMetrics(storeID uint) {
	cache.GetInstance().InvalidateTag("metrics")
	if config.RedisClient != nil {
		ctx := config.RedisCtx()
		pattern := fmt.Sprintf("metrics:dashboard:%d:*", storeID)
		iter := config.RedisClient.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			config.RedisClient.Del(ctx, iter.Val())
		}
	}
}

func RegisterOrderRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/orders")

	// PATCH /api/orders/:id – sparse order patch with item reconciliation
	g.PATCH("/:id", func(c echo.Context) error {
		start := time.Now()

		sid, err := storeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "order id must be a number"})
		}

		var body map[string]interface{}
		// Bind only the JSON body: full c.Bind would also copy the :id path
		// param into the map, which DecodePatch (ErrorUnused) rejects.
		if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		patch, err := orderService.DecodePatch(body)
		if err != nil {
			return c.JSON(errorStatus(err), echo.Map{"error": err.Error()})
		}

		svc, err := buildService(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		ord, err := svc.UpdateOrder(sid, uint(orderID), patch)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(errorStatus(err), echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}
		invalidateMetrics(sid)

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, ord)
	})

	// POST /api/orders/bulk – one patch applied to many orders
	g.POST("/bulk", func(c echo.Context) error {
		start := time.Now()

		sid, err := storeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		var body struct {
			OrderIDs []uint                 `json:"order_ids"`
			Patch    map[string]interface{} `json:"patch"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		patch, err := orderService.DecodePatch(body.Patch)
		if err != nil {
			return c.JSON(errorStatus(err), echo.Map{"error": err.Error()})
		}

		svc, err := buildService(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		res, err := svc.BulkUpdateOrders(sid, body.OrderIDs, patch)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(errorStatus(err), echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}
		invalidateMetrics(sid)

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"requested":           res.Requested,
			"affected":            res.Affected,
			"request_duration_ms": duration,
		})
	})
}
