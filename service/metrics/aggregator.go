package metrics

import (
	"fmt"
	"sort"
	"time"

	catalogEntity "shopcore.GO/model/entity/catalog"
	salesEntity "shopcore.GO/model/entity/sales"
	inventoryService "shopcore.GO/service/inventory"
)

const trendDays = 30

// Aggregate computes the dashboard snapshot from a store's orders
// (items preloaded) and its catalog (variants and inventory
// preloaded). Read-only and side-effect-free; safe to run while
// writers are active, at the price of a transiently inconsistent
// snapshot.
func Aggregate(orders []salesEntity.Order, products []catalogEntity.Product, period Period, now time.Time) (*DashboardMetrics, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("unknown period %q", period)
	}

	cur := CurrentWindow(period, now)
	prev := cur.Previous()

	costs := buildCostIndex(products)

	curStats := windowStats(orders, cur, costs)
	prevStats := windowStats(orders, prev, costs)

	m := &DashboardMetrics{
		Period:                period,
		Revenue:               curStats.revenue,
		OrderCount:            curStats.orderCount,
		AverageOrderValue:     curStats.averageOrderValue(),
		PaidAverageOrderValue: curStats.paidAverageOrderValue(),
		GrossProfit:           curStats.profit,
		ChangePercentage: ChangePercentage{
			Revenue: changePct(prevStats.revenue, curStats.revenue),
			Orders:  changePct(float64(prevStats.orderCount), float64(curStats.orderCount)),
			AOV:     changePct(prevStats.averageOrderValue(), curStats.averageOrderValue()),
			Profit:  changePct(prevStats.profit, curStats.profit),
		},
		OrderStatusCounts: statusCounts(orders),
		SalesTrend:        salesTrend(orders, now),
		Customers:         customerSnapshot(orders, cur),
		TopProducts:       topProducts(orders, cur, costs),
		Inventory:         inventorySummary(products),
		PaymentAmounts:    paymentAmounts(orders),
	}
	m.Alerts = buildAlerts(m)
	return m, nil
}

// changePct is the period-over-period percentage change. A zero
// previous value maps to 0% when current is also zero, 100% otherwise.
func changePct(prev, cur float64) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return (cur - prev) / prev * 100
}

type costEntry struct {
	cost float64
	name string
}

// buildCostIndex maps every inventory position to its unit cost and
// product name. Variant cost falls back to the product cost.
func buildCostIndex(products []catalogEntity.Product) map[inventoryService.ItemKey]costEntry {
	idx := make(map[inventoryService.ItemKey]costEntry)
	for i := range products {
		p := &products[i]
		idx[inventoryService.ItemKey{ProductID: p.ID}] = costEntry{cost: p.Cost, name: p.Name}
		for j := range p.Variants {
			v := &p.Variants[j]
			idx[inventoryService.ItemKey{ProductID: p.ID, VariantID: v.ID}] = costEntry{
				cost: p.UnitCost(v),
				name: p.Name,
			}
		}
	}
	return idx
}

func lookupCost(costs map[inventoryService.ItemKey]costEntry, productID, variantID uint) (costEntry, bool) {
	if e, ok := costs[inventoryService.ItemKey{ProductID: productID, VariantID: variantID}]; ok {
		return e, true
	}
	e, ok := costs[inventoryService.ItemKey{ProductID: productID}]
	return e, ok
}

type stats struct {
	revenue      float64 // paid subtotal
	orderCount   int     // all orders
	subtotalSum  float64 // all orders
	paidCount    int
	paidSubtotal float64
	profit       float64
}

func (s stats) averageOrderValue() float64 {
	if s.orderCount == 0 {
		return 0
	}
	return s.subtotalSum / float64(s.orderCount)
}

func (s stats) paidAverageOrderValue() float64 {
	if s.paidCount == 0 {
		return 0
	}
	return s.paidSubtotal / float64(s.paidCount)
}

func windowStats(orders []salesEntity.Order, w Window, costs map[inventoryService.ItemKey]costEntry) stats {
	var s stats
	for i := range orders {
		o := &orders[i]
		if !w.Contains(o.CreatedAt) {
			continue
		}
		s.orderCount++
		s.subtotalSum += o.Subtotal
		if o.PaymentStatus != salesEntity.PaymentPaid {
			continue
		}
		s.paidCount++
		s.paidSubtotal += o.Subtotal
		s.revenue += o.Subtotal
		for j := range o.Items {
			it := &o.Items[j]
			entry, _ := lookupCost(costs, it.ProductID, it.VariantID)
			s.profit += (it.UnitPrice - entry.cost) * float64(it.Quantity)
		}
	}
	return s
}

func statusCounts(orders []salesEntity.Order) map[string]int {
	counts := make(map[string]int)
	for i := range orders {
		counts[orders[i].Status]++
	}
	return counts
}

// salesTrend buckets paid subtotals by calendar day over the trailing
// 30 days, oldest first. Days without sales appear with zero.
func salesTrend(orders []salesEntity.Order, now time.Time) []TrendPoint {
	perDay := make(map[string]float64)
	for i := range orders {
		o := &orders[i]
		if o.PaymentStatus != salesEntity.PaymentPaid {
			continue
		}
		perDay[o.CreatedAt.Format("2006-01-02")] += o.Subtotal
	}

	trend := make([]TrendPoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		trend = append(trend, TrendPoint{Date: date, Sales: perDay[date]})
	}
	return trend
}

func customerSnapshot(orders []salesEntity.Order, cur Window) CustomerSnapshot {
	type customerAgg struct {
		firstOrder time.Time
		name       string
		orderCount int
		paidTotal  float64
	}
	byCustomer := make(map[string]*customerAgg)
	for i := range orders {
		o := &orders[i]
		if o.CustomerID == "" {
			continue
		}
		agg, ok := byCustomer[o.CustomerID]
		if !ok {
			agg = &customerAgg{firstOrder: o.CreatedAt}
			byCustomer[o.CustomerID] = agg
		}
		if o.CreatedAt.Before(agg.firstOrder) {
			agg.firstOrder = o.CreatedAt
		}
		if agg.name == "" {
			agg.name = o.CustomerName
		}
		agg.orderCount++
		if o.PaymentStatus == salesEntity.PaymentPaid {
			agg.paidTotal += o.Total
		}
	}

	snap := CustomerSnapshot{DistinctCustomers: len(byCustomer)}
	returning := 0
	var topID string
	var top *customerAgg
	for id, agg := range byCustomer {
		if cur.Contains(agg.firstOrder) {
			snap.NewCustomers++
		}
		if agg.orderCount > 1 {
			returning++
		}
		if agg.paidTotal > 0 && (top == nil || agg.paidTotal > top.paidTotal) {
			top, topID = agg, id
		}
	}
	if len(byCustomer) > 0 {
		snap.ReturningRate = float64(returning) / float64(len(byCustomer))
	}
	if top != nil {
		snap.TopCustomer = &TopCustomer{
			CustomerID:   topID,
			CustomerName: top.name,
			OrderCount:   top.orderCount,
			PaidTotal:    top.paidTotal,
		}
	}
	return snap
}

// topProducts ranks the current window's paid orders by units sold and
// keeps the top three.
func topProducts(orders []salesEntity.Order, cur Window, costs map[inventoryService.ItemKey]costEntry) []TopProduct {
	byProduct := make(map[uint]*TopProduct)
	for i := range orders {
		o := &orders[i]
		if o.PaymentStatus != salesEntity.PaymentPaid || !cur.Contains(o.CreatedAt) {
			continue
		}
		for j := range o.Items {
			it := &o.Items[j]
			tp, ok := byProduct[it.ProductID]
			if !ok {
				name := it.ProductName
				if entry, found := lookupCost(costs, it.ProductID, 0); found && entry.name != "" {
					name = entry.name
				}
				tp = &TopProduct{ProductID: it.ProductID, Name: name}
				byProduct[it.ProductID] = tp
			}
			entry, _ := lookupCost(costs, it.ProductID, it.VariantID)
			tp.UnitsSold += it.Quantity
			tp.Revenue += it.LineTotal
			tp.Cost += entry.cost * float64(it.Quantity)
		}
	}

	ranked := make([]TopProduct, 0, len(byProduct))
	for _, tp := range byProduct {
		tp.Profit = tp.Revenue - tp.Cost
		if tp.Revenue > 0 {
			tp.Margin = tp.Profit / tp.Revenue * 100
		}
		ranked = append(ranked, *tp)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].UnitsSold != ranked[j].UnitsSold {
			return ranked[i].UnitsSold > ranked[j].UnitsSold
		}
		return ranked[i].Revenue > ranked[j].Revenue
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

// inventorySummary rolls every stock position up to store-wide
// figures. A product's positions are its variants' records, or its
// product-level record when it has no variants.
func inventorySummary(products []catalogEntity.Product) InventorySummary {
	var sum InventorySummary
	for i := range products {
		p := &products[i]

		hasLow := false
		tracked := 0
		trackedOut := 0
		for _, pos := range positionsOf(p) {
			sum.TotalAvailableUnits += pos.available
			sum.TotalInventoryValue += float64(pos.available) * pos.cost
			if !pos.tracked {
				continue
			}
			tracked++
			if pos.available <= pos.threshold {
				sum.LowStockUnits += pos.available
				hasLow = true
			}
			if pos.available == 0 {
				sum.OutOfStockVariants++
				trackedOut++
			}
		}
		if hasLow {
			sum.LowStockProducts++
		}
		if tracked > 0 && trackedOut == tracked {
			sum.OutOfStockProducts++
		}
	}
	return sum
}

type stockPosition struct {
	available int
	threshold int
	tracked   bool
	cost      float64
}

func positionsOf(p *catalogEntity.Product) []stockPosition {
	if len(p.Variants) == 0 {
		if p.Inventory == nil {
			return nil
		}
		return []stockPosition{{
			available: p.Inventory.QuantityAvailable,
			threshold: p.Inventory.LowStockThreshold,
			tracked:   p.Inventory.TrackInventory,
			cost:      p.Cost,
		}}
	}
	positions := make([]stockPosition, 0, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.Inventory == nil {
			continue
		}
		positions = append(positions, stockPosition{
			available: v.Inventory.QuantityAvailable,
			threshold: v.Inventory.LowStockThreshold,
			tracked:   v.Inventory.TrackInventory,
			cost:      p.UnitCost(v),
		})
	}
	return positions
}

func paymentAmounts(orders []salesEntity.Order) map[string]float64 {
	amounts := make(map[string]float64)
	for i := range orders {
		amounts[orders[i].PaymentStatus] += orders[i].Total
	}
	return amounts
}

func buildAlerts(m *DashboardMetrics) []Alert {
	var alerts []Alert
	if m.Inventory.LowStockProducts > 0 {
		alerts = append(alerts, Alert{
			Type:     AlertLowStock,
			Severity: "warning",
			Message:  fmt.Sprintf("%d products are low on stock", m.Inventory.LowStockProducts),
		})
	}
	if m.Inventory.OutOfStockProducts > 0 {
		alerts = append(alerts, Alert{
			Type:     AlertOutOfStock,
			Severity: "critical",
			Message:  fmt.Sprintf("%d products are out of stock", m.Inventory.OutOfStockProducts),
		})
	}
	if pending := m.OrderStatusCounts[salesEntity.StatusPending]; pending > 0 {
		alerts = append(alerts, Alert{
			Type:     AlertPendingOrders,
			Severity: "info",
			Message:  fmt.Sprintf("%d orders are waiting for confirmation", pending),
		})
	}
	if amount := m.PaymentAmounts[salesEntity.PaymentPending]; amount > 0 {
		alerts = append(alerts, Alert{
			Type:     AlertPendingPayment,
			Severity: "info",
			Message:  fmt.Sprintf("%.2f in payments is outstanding", amount),
		})
	}
	return alerts
}
