package domain

import (
	"time"
)

// RangeQuery bounds a warehouse fetch to a creation-date window.
// A zero End means "up to now"; Normalize resolves it against a clock.
type RangeQuery struct {
	Start time.Time
	End   time.Time
}

// Normalize widens the window to whole days: Start is truncated to
// midnight UTC and End is extended to the last instant of its day so
// both bounds are inclusive.
func (q RangeQuery) Normalize(now time.Time) RangeQuery {
	start := q.Start.UTC()
	end := q.End
	if end.IsZero() {
		end = now
	}
	end = end.UTC()

	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)

	return RangeQuery{Start: start, End: end}
}

// Key identifies a normalized range for caching.
func (q RangeQuery) Key() string {
	return q.Start.Format("2006-01-02") + "|" + q.End.Format("2006-01-02")
}

// OrderRow is one packed order header inside the fetch window.
type OrderRow struct {
	OrderID                 string     `gorm:"column:order_id"`
	CustomerID              string     `gorm:"column:customer_id"`
	SalesRepID              string     `gorm:"column:sales_rep_id"`
	CreatedAt               time.Time  `gorm:"column:created_at_order"`
	DateOrdered             *time.Time `gorm:"column:date_ordered"`
	DateExpected            *time.Time `gorm:"column:date_expected"`
	ShipDate                *time.Time `gorm:"column:ship_date"`
	ShippingMethodRequested string     `gorm:"column:shipping_method_requested"`
}

// OrderLineRow is one shipped line inside the fetch window.
type OrderLineRow struct {
	OrderLineID     string     `gorm:"column:order_line_id"`
	OrderID         string     `gorm:"column:order_id"`
	ProductID       string     `gorm:"column:product_id"`
	ShipperID       string     `gorm:"column:shipper_id"`
	QuantityShipped *float64   `gorm:"column:quantity_shipped"`
	SalePrice       *float64   `gorm:"column:sale_price"`
	UnitCost        *float64   `gorm:"column:unit_cost"`
	DateShipped     *time.Time `gorm:"column:date_shipped"`
}

type CustomerRow struct {
	CustomerID   string `gorm:"column:customer_id"`
	CustomerName string `gorm:"column:customer_name"`
	RegionID     string `gorm:"column:region_id"`
	IsRetail     *bool  `gorm:"column:is_retail"`
}

type ProductRow struct {
	ProductID        string   `gorm:"column:product_id"`
	SKU              string   `gorm:"column:sku"`
	ProductName      string   `gorm:"column:product_name"`
	UnitOfBillingID  *int64   `gorm:"column:unit_of_billing_id"`
	SupplierID       string   `gorm:"column:supplier_id"`
	ProductListPrice *float64 `gorm:"column:product_list_price"`
	CostPrice        *float64 `gorm:"column:cost_price"`
}

type RegionRow struct {
	RegionID   string `gorm:"column:region_id"`
	RegionName string `gorm:"column:region_name"`
}

type ShipperRow struct {
	ShipperID string `gorm:"column:shipper_id"`
	Carrier   string `gorm:"column:carrier"`
}

// ShippingMethodRow carries the method key under its warehouse alias;
// the pipeline renames it to the orders-side key before joining.
type ShippingMethodRow struct {
	SMID               string `gorm:"column:sm_id"`
	ShippingMethodName string `gorm:"column:shipping_method_name"`
}

type SupplierRow struct {
	SupplierID   string `gorm:"column:supplier_id"`
	SupplierName string `gorm:"column:supplier_name"`
}

// PackRow is one physical pack picked against an order line.
type PackRow struct {
	PickedForOrderLine string     `gorm:"column:picked_for_order_line"`
	WeightLb           *float64   `gorm:"column:weight_lb"`
	ItemCount          *float64   `gorm:"column:item_count"`
	DeliveryDate       *time.Time `gorm:"column:delivery_date"`
}

// RawTables bundles the nine warehouse extracts for one range. A table
// whose query failed is present as an empty slice, so the pipeline
// never has to distinguish nil from empty.
type RawTables struct {
	Orders          []OrderRow
	OrderLines      []OrderLineRow
	Customers       []CustomerRow
	Products        []ProductRow
	Regions         []RegionRow
	Shippers        []ShipperRow
	ShippingMethods []ShippingMethodRow
	Suppliers       []SupplierRow
	Packs           []PackRow
}
