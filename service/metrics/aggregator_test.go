package metrics

import (
	"math"
	"testing"
	"time"

	catalogEntity "shopcore.GO/model/entity/catalog"
	inventoryEntity "shopcore.GO/model/entity/inventory"
	salesEntity "shopcore.GO/model/entity/sales"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time { return now.AddDate(0, 0, -d) }

func paidOrder(createdAt time.Time, subtotal float64, items ...salesEntity.OrderItem) salesEntity.Order {
	return salesEntity.Order{
		Status:        salesEntity.StatusDelivered,
		PaymentStatus: salesEntity.PaymentPaid,
		Subtotal:      subtotal,
		Total:         subtotal,
		CreatedAt:     createdAt,
		Items:         items,
	}
}

func item(productID, variantID uint, qty int, price float64) salesEntity.OrderItem {
	return salesEntity.OrderItem{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  qty,
		UnitPrice: price,
		LineTotal: float64(qty) * price,
	}
}

func approx(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

func TestAggregate_UnknownPeriod(t *testing.T) {
	if _, err := Aggregate(nil, nil, Period("daily"), now); err == nil {
		t.Fatal("expected error for unknown period")
	}
}

func TestAggregate_Empty(t *testing.T) {
	m, err := Aggregate(nil, nil, PeriodMonthly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if m.Revenue != 0 || m.OrderCount != 0 || m.AverageOrderValue != 0 || m.GrossProfit != 0 {
		t.Errorf("empty metrics = %+v", m)
	}
	if m.ChangePercentage.Revenue != 0 {
		t.Errorf("change pct on empty = %v", m.ChangePercentage.Revenue)
	}
	if len(m.SalesTrend) != 30 {
		t.Errorf("trend length = %d, want 30", len(m.SalesTrend))
	}
	if len(m.Alerts) != 0 {
		t.Errorf("alerts on empty data: %v", m.Alerts)
	}
}

func TestAggregate_WindowsAndChange(t *testing.T) {
	orders := []salesEntity.Order{
		paidOrder(daysAgo(2), 100),
		paidOrder(daysAgo(5), 200),
		// previous weekly window
		paidOrder(daysAgo(9), 100),
		// outside both windows
		paidOrder(daysAgo(20), 999),
	}

	m, err := Aggregate(orders, nil, PeriodWeekly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if m.Revenue != 300 {
		t.Errorf("revenue = %v, want 300", m.Revenue)
	}
	if m.OrderCount != 2 {
		t.Errorf("order count = %d, want 2", m.OrderCount)
	}
	if m.AverageOrderValue != 150 {
		t.Errorf("aov = %v, want 150", m.AverageOrderValue)
	}
	// 100 -> 300
	if !approx(m.ChangePercentage.Revenue, 200) {
		t.Errorf("revenue change = %v, want 200", m.ChangePercentage.Revenue)
	}
	// 1 order -> 2 orders
	if !approx(m.ChangePercentage.Orders, 100) {
		t.Errorf("orders change = %v, want 100", m.ChangePercentage.Orders)
	}
}

func TestAggregate_UnpaidExcludedFromRevenue(t *testing.T) {
	orders := []salesEntity.Order{
		paidOrder(daysAgo(1), 100),
		{
			Status:        salesEntity.StatusPending,
			PaymentStatus: salesEntity.PaymentPending,
			Subtotal:      50,
			Total:         50,
			CreatedAt:     daysAgo(1),
		},
	}

	m, err := Aggregate(orders, nil, PeriodMonthly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if m.Revenue != 100 {
		t.Errorf("revenue = %v, want 100", m.Revenue)
	}
	// All orders count toward order count and plain AOV.
	if m.OrderCount != 2 || m.AverageOrderValue != 75 {
		t.Errorf("count/aov = %d/%v, want 2/75", m.OrderCount, m.AverageOrderValue)
	}
	if m.PaidAverageOrderValue != 100 {
		t.Errorf("paid aov = %v, want 100", m.PaidAverageOrderValue)
	}
	if m.PaymentAmounts[salesEntity.PaymentPending] != 50 {
		t.Errorf("pending payments = %v", m.PaymentAmounts)
	}
}

func TestChangePct(t *testing.T) {
	cases := []struct{ prev, cur, want float64 }{
		{0, 0, 0},
		{0, 50, 100},
		{100, 150, 50},
		{100, 50, -50},
		{200, 0, -100},
	}
	for _, c := range cases {
		if got := changePct(c.prev, c.cur); !approx(got, c.want) {
			t.Errorf("changePct(%v, %v) = %v, want %v", c.prev, c.cur, got, c.want)
		}
	}
}

// Only activity in the previous window moves the change percentage
// when the current window is fixed.
func TestAggregate_PreviousWindowOnlyMovesChange(t *testing.T) {
	cur := []salesEntity.Order{paidOrder(daysAgo(2), 100)}

	base, err := Aggregate(cur, nil, PeriodWeekly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	withPrev, err := Aggregate(append(cur, paidOrder(daysAgo(10), 25)), nil, PeriodWeekly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if base.Revenue != withPrev.Revenue {
		t.Errorf("current revenue moved: %v vs %v", base.Revenue, withPrev.Revenue)
	}
	if base.OrderCount != withPrev.OrderCount {
		t.Errorf("current order count moved: %d vs %d", base.OrderCount, withPrev.OrderCount)
	}
	if base.ChangePercentage.Revenue == withPrev.ChangePercentage.Revenue {
		t.Error("change percentage did not move with previous-window data")
	}
	// Empty previous window: 100 by convention. 25 -> 100: 300.
	if !approx(base.ChangePercentage.Revenue, 100) {
		t.Errorf("baseline revenue change = %v, want 100", base.ChangePercentage.Revenue)
	}
	if !approx(withPrev.ChangePercentage.Revenue, 300) {
		t.Errorf("revenue change = %v, want 300", withPrev.ChangePercentage.Revenue)
	}
}

func TestAggregate_ProfitUsesVariantCostFallback(t *testing.T) {
	variantCost := 3.0
	products := []catalogEntity.Product{
		{
			ID:   1,
			Name: "Mug",
			Cost: 2,
			Variants: []catalogEntity.ProductVariant{
				{ID: 10, ProductID: 1, Cost: &variantCost},
				{ID: 11, ProductID: 1}, // no cost, falls back to product
			},
		},
	}
	orders := []salesEntity.Order{
		paidOrder(daysAgo(1), 50,
			item(1, 10, 2, 10), // profit (10-3)*2 = 14
			item(1, 11, 1, 10), // profit (10-2)*1 = 8
			item(9, 0, 1, 10),  // unknown product, cost 0: profit 10
		),
	}

	m, err := Aggregate(orders, products, PeriodMonthly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !approx(m.GrossProfit, 32) {
		t.Errorf("gross profit = %v, want 32", m.GrossProfit)
	}
}

func TestAggregate_SalesTrend(t *testing.T) {
	orders := []salesEntity.Order{
		paidOrder(daysAgo(0), 10),
		paidOrder(daysAgo(0), 5),
		paidOrder(daysAgo(3), 7),
		paidOrder(daysAgo(40), 99), // outside the trend range
	}

	m, err := Aggregate(orders, nil, PeriodMonthly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(m.SalesTrend) != 30 {
		t.Fatalf("trend length = %d", len(m.SalesTrend))
	}
	last := m.SalesTrend[29]
	if last.Date != now.Format("2006-01-02") || last.Sales != 15 {
		t.Errorf("last point = %+v, want today with 15", last)
	}
	if m.SalesTrend[26].Sales != 7 {
		t.Errorf("day -3 sales = %v, want 7", m.SalesTrend[26].Sales)
	}
	if m.SalesTrend[0].Date != daysAgo(29).Format("2006-01-02") {
		t.Errorf("first point date = %s", m.SalesTrend[0].Date)
	}
	var total float64
	for _, p := range m.SalesTrend {
		total += p.Sales
	}
	if total != 22 {
		t.Errorf("trend total = %v, want 22", total)
	}
}

func TestAggregate_CustomerSnapshot(t *testing.T) {
	old := paidOrder(daysAgo(100), 10)
	old.CustomerID = "c-returning"
	old.CustomerName = "Rita"

	recent := paidOrder(daysAgo(2), 30)
	recent.CustomerID = "c-returning"
	recent.CustomerName = "Rita"

	fresh := paidOrder(daysAgo(1), 500)
	fresh.CustomerID = "c-new"
	fresh.CustomerName = "Nino"

	anonymous := paidOrder(daysAgo(1), 999)

	m, err := Aggregate([]salesEntity.Order{old, recent, fresh, anonymous}, nil, PeriodMonthly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	c := m.Customers
	if c.DistinctCustomers != 2 {
		t.Errorf("distinct = %d, want 2", c.DistinctCustomers)
	}
	if c.NewCustomers != 1 {
		t.Errorf("new = %d, want 1", c.NewCustomers)
	}
	if !approx(c.ReturningRate, 0.5) {
		t.Errorf("returning rate = %v, want 0.5", c.ReturningRate)
	}
	if c.TopCustomer == nil || c.TopCustomer.CustomerID != "c-new" || c.TopCustomer.PaidTotal != 500 {
		t.Errorf("top customer = %+v", c.TopCustomer)
	}
}

func TestAggregate_TopProducts(t *testing.T) {
	products := []catalogEntity.Product{
		{ID: 1, Name: "Mug", Cost: 2},
		{ID: 2, Name: "Pot", Cost: 5},
		{ID: 3, Name: "Pan", Cost: 1},
		{ID: 4, Name: "Lid", Cost: 1},
	}
	orders := []salesEntity.Order{
		paidOrder(daysAgo(1), 0,
			item(1, 0, 5, 4),
			item(2, 0, 3, 10),
		),
		paidOrder(daysAgo(2), 0,
			item(1, 0, 2, 4),
			item(3, 0, 3, 2),
			item(4, 0, 1, 2),
		),
		// unpaid units never rank
		{
			PaymentStatus: salesEntity.PaymentPending,
			CreatedAt:     daysAgo(1),
			Items:         []salesEntity.OrderItem{item(4, 0, 50, 2)},
		},
	}

	m, err := Aggregate(orders, products, PeriodMonthly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(m.TopProducts) != 3 {
		t.Fatalf("top products = %d, want 3", len(m.TopProducts))
	}
	if m.TopProducts[0].ProductID != 1 || m.TopProducts[0].UnitsSold != 7 {
		t.Errorf("rank 1 = %+v", m.TopProducts[0])
	}
	if m.TopProducts[1].ProductID != 2 && m.TopProducts[1].ProductID != 3 {
		t.Errorf("rank 2 = %+v", m.TopProducts[1])
	}
	// Equal units: revenue breaks the tie (Pot 30 > Pan 6).
	if m.TopProducts[1].ProductID != 2 {
		t.Errorf("tie break failed: rank 2 = %+v", m.TopProducts[1])
	}
	top := m.TopProducts[0]
	if top.Name != "Mug" || !approx(top.Revenue, 28) || !approx(top.Profit, 14) {
		t.Errorf("rank 1 figures = %+v", top)
	}
	if !approx(top.Margin, 50) {
		t.Errorf("margin = %v, want 50", top.Margin)
	}
}

func TestAggregate_InventorySummary(t *testing.T) {
	inv := func(avail, threshold int, tracked bool) *inventoryEntity.InventoryRecord {
		return &inventoryEntity.InventoryRecord{
			QuantityAvailable: avail,
			LowStockThreshold: threshold,
			TrackInventory:    tracked,
		}
	}
	cheap := 1.0
	products := []catalogEntity.Product{
		// simple product, healthy stock
		{ID: 1, Cost: 2, Inventory: inv(10, 3, true)},
		// simple product, low
		{ID: 2, Cost: 4, Inventory: inv(2, 3, true)},
		// variant product: one variant out, one healthy
		{ID: 3, Cost: 3, Variants: []catalogEntity.ProductVariant{
			{ID: 30, ProductID: 3, Inventory: inv(0, 2, true)},
			{ID: 31, ProductID: 3, Cost: &cheap, Inventory: inv(8, 2, true)},
		}},
		// fully out of stock product
		{ID: 4, Cost: 5, Inventory: inv(0, 1, true)},
		// untracked product never alerts
		{ID: 5, Cost: 9, Inventory: inv(0, 1, false)},
	}

	m, err := Aggregate(nil, products, PeriodMonthly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	s := m.Inventory
	if s.TotalAvailableUnits != 20 {
		t.Errorf("total units = %d, want 20", s.TotalAvailableUnits)
	}
	// 10*2 + 2*4 + 0*3 + 8*1 + 0 + 0
	if !approx(s.TotalInventoryValue, 36) {
		t.Errorf("inventory value = %v, want 36", s.TotalInventoryValue)
	}
	if s.LowStockProducts != 3 {
		t.Errorf("low stock products = %d, want 3", s.LowStockProducts)
	}
	if s.OutOfStockVariants != 2 {
		t.Errorf("out of stock variants = %d, want 2", s.OutOfStockVariants)
	}
	if s.OutOfStockProducts != 1 {
		t.Errorf("out of stock products = %d, want 1", s.OutOfStockProducts)
	}

	types := make(map[string]bool)
	for _, a := range m.Alerts {
		types[a.Type] = true
	}
	if !types[AlertLowStock] || !types[AlertOutOfStock] {
		t.Errorf("alerts = %v", m.Alerts)
	}
}

func TestAggregate_PendingAlerts(t *testing.T) {
	orders := []salesEntity.Order{
		{
			Status:        salesEntity.StatusPending,
			PaymentStatus: salesEntity.PaymentPending,
			Subtotal:      40,
			Total:         40,
			CreatedAt:     daysAgo(1),
		},
	}
	m, err := Aggregate(orders, nil, PeriodMonthly, now)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	types := make(map[string]string)
	for _, a := range m.Alerts {
		types[a.Type] = a.Severity
	}
	if types[AlertPendingOrders] != "info" || types[AlertPendingPayment] != "info" {
		t.Errorf("alerts = %v", m.Alerts)
	}
	if m.OrderStatusCounts[salesEntity.StatusPending] != 1 {
		t.Errorf("status counts = %v", m.OrderStatusCounts)
	}
}
