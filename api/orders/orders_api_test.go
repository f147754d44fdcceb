package orders

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	inventoryEntity "shopcore.GO/model/entity/inventory"
	salesEntity "shopcore.GO/model/entity/sales"
)

func ordersTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&salesEntity.Order{},
		&salesEntity.OrderItem{},
		&inventoryEntity.InventoryRecord{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func ordersTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	e := echo.New()
	db := ordersTestDB(t)
	RegisterOrderRoutes(e.Group("/api"), db)
	return e, db
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOrderPatchAPI_RequiresStore(t *testing.T) {
	e, _ := ordersTestServer(t)

	rec := doJSON(e, http.MethodPatch, "/api/orders/1", `{"notes":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOrderPatchAPI_NotFound(t *testing.T) {
	e, _ := ordersTestServer(t)

	rec := doJSON(e, http.MethodPatch, "/api/orders/99?store_id=1", `{"notes":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestOrderPatchAPI_BadID(t *testing.T) {
	e, _ := ordersTestServer(t)

	rec := doJSON(e, http.MethodPatch, "/api/orders/abc?store_id=1", `{"notes":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOrderPatchAPI_UnknownField(t *testing.T) {
	e, db := ordersTestServer(t)
	ord := salesEntity.Order{StoreID: 1, OrderNumber: "A-1", Status: salesEntity.StatusPending}
	if err := db.Create(&ord).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(e, http.MethodPatch,
		fmt.Sprintf("/api/orders/%d?store_id=1", ord.ID), `{"nope":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOrderPatchAPI_UpdatesOrderAndItems(t *testing.T) {
	e, db := ordersTestServer(t)
	ord := salesEntity.Order{StoreID: 1, OrderNumber: "A-2", Status: salesEntity.StatusPending}
	if err := db.Create(&ord).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	inv := inventoryEntity.InventoryRecord{StoreID: 1, ProductID: 7, QuantityAvailable: 10, TrackInventory: true}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	body := `{
		"status": "confirmed",
		"notes": "ring the bell",
		"items": [{"product_id": 7, "quantity": 3, "unit_price": 2.5, "product_name": "Mug"}]
	}`
	rec := doJSON(e, http.MethodPatch, fmt.Sprintf("/api/orders/%d?store_id=1", ord.ID), body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("missing duration header")
	}

	var got salesEntity.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != salesEntity.StatusConfirmed || got.Notes != "ring the bell" {
		t.Errorf("patched order = %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 || got.Items[0].LineTotal != 7.5 {
		t.Errorf("items = %+v", got.Items)
	}

	var stock inventoryEntity.InventoryRecord
	if err := db.First(&stock, inv.ID).Error; err != nil {
		t.Fatalf("reload inventory: %v", err)
	}
	if stock.QuantityAvailable != 7 || stock.QuantityReserved != 3 {
		t.Errorf("inventory = %d/%d, want 7/3", stock.QuantityAvailable, stock.QuantityReserved)
	}
}

func TestOrderPatchAPI_StoreHeaderAccepted(t *testing.T) {
	e, db := ordersTestServer(t)
	ord := salesEntity.Order{StoreID: 3, OrderNumber: "A-3", Status: salesEntity.StatusPending}
	if err := db.Create(&ord).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/orders/%d", ord.ID),
		strings.NewReader(`{"notes":"via header"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Store-ID", "3")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestBulkAPI_CancelsAndReportsAffected(t *testing.T) {
	e, db := ordersTestServer(t)
	a := salesEntity.Order{StoreID: 1, OrderNumber: "B-1", Status: salesEntity.StatusPending}
	b := salesEntity.Order{StoreID: 1, OrderNumber: "B-2", Status: salesEntity.StatusPending}
	for _, o := range []*salesEntity.Order{&a, &b} {
		if err := db.Create(o).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	body := fmt.Sprintf(`{"order_ids":[%d,%d,9999],"patch":{"status":"cancelled"}}`, a.ID, b.ID)
	rec := doJSON(e, http.MethodPost, "/api/orders/bulk?store_id=1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Requested int   `json:"requested"`
		Affected  int64 `json:"affected"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Requested != 3 || res.Affected != 2 {
		t.Errorf("result = %+v, want requested 3 affected 2", res)
	}

	var got salesEntity.Order
	if err := db.First(&got, a.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != salesEntity.StatusCancelled {
		t.Errorf("status = %s", got.Status)
	}
}

func TestBulkAPI_RejectsItems(t *testing.T) {
	e, db := ordersTestServer(t)
	ord := salesEntity.Order{StoreID: 1, OrderNumber: "B-3", Status: salesEntity.StatusPending}
	if err := db.Create(&ord).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	body := fmt.Sprintf(
		`{"order_ids":[%d],"patch":{"status":"cancelled","items":[{"product_id":1,"quantity":1}]}}`,
		ord.ID)
	rec := doJSON(e, http.MethodPost, "/api/orders/bulk?store_id=1", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBulkAPI_EmptyIDs(t *testing.T) {
	e, _ := ordersTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/orders/bulk?store_id=1",
		`{"order_ids":[],"patch":{"status":"cancelled"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
