package metrics

// DashboardMetrics is the value object the dashboard consumes. All
// monetary figures are in store currency.
type DashboardMetrics struct {
	Period Period `json:"period"`

	Revenue               float64 `json:"revenue"`
	OrderCount            int     `json:"order_count"`
	AverageOrderValue     float64 `json:"average_order_value"`
	PaidAverageOrderValue float64 `json:"paid_average_order_value"`
	GrossProfit           float64 `json:"gross_profit"`

	ChangePercentage ChangePercentage `json:"change_percentage"`

	OrderStatusCounts map[string]int `json:"order_status_counts"`
	SalesTrend        []TrendPoint   `json:"sales_trend"`

	Customers   CustomerSnapshot `json:"customers"`
	TopProducts []TopProduct     `json:"top_products"`

	Inventory      InventorySummary   `json:"inventory"`
	PaymentAmounts map[string]float64 `json:"payment_amounts"`

	Alerts []Alert `json:"alerts"`
}

// ChangePercentage holds period-over-period deltas against the
// immediately preceding window of equal length.
type ChangePercentage struct {
	Revenue float64 `json:"revenue"`
	Orders  float64 `json:"orders"`
	AOV     float64 `json:"aov"`
	Profit  float64 `json:"profit"`
}

// TrendPoint is one calendar day of paid sales.
type TrendPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Sales float64 `json:"sales"`
}

// CustomerSnapshot summarizes the customer base.
type CustomerSnapshot struct {
	NewCustomers      int          `json:"new_customers"`
	DistinctCustomers int          `json:"distinct_customers"`
	ReturningRate     float64      `json:"returning_rate"` // 0..1
	TopCustomer       *TopCustomer `json:"top_customer,omitempty"`
}

// TopCustomer is the customer with the highest paid total.
type TopCustomer struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	OrderCount   int     `json:"order_count"`
	PaidTotal    float64 `json:"paid_total"`
}

// TopProduct is one of the best sellers by units sold.
type TopProduct struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Profit    float64 `json:"profit"`
	Margin    float64 `json:"margin"` // percent of revenue
}

// InventorySummary rolls stock positions up to dashboard figures.
type InventorySummary struct {
	TotalAvailableUnits int     `json:"total_available_units"`
	LowStockUnits       int     `json:"low_stock_units"`
	OutOfStockVariants  int     `json:"out_of_stock_variants"`
	LowStockProducts    int     `json:"low_stock_products"`
	OutOfStockProducts  int     `json:"out_of_stock_products"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
}

// Alert flags a condition the dashboard should surface.
type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Alert types.
const (
	AlertLowStock       = "low_stock"
	AlertOutOfStock     = "out_of_stock"
	AlertPendingOrders  = "pending_orders"
	AlertPendingPayment = "pending_payment"
)
