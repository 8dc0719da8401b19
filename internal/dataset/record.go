package dataset

import "time"

// Delivery statuses. Pending marks rows where either the delivery or
// the expected date is missing, so they are never silently "Late".
const (
	DeliveryOnTime  = "On Time"
	DeliveryLate    = "Late"
	DeliveryPending = "Pending"
)

// Record is one enriched order line: the order header joined with its
// line, the descriptive dimensions, and the pack rollup. Identifiers
// are normalized opaque strings; quantitative fields are coerced so
// downstream arithmetic never meets a null.
type Record struct {
	OrderID                 string
	OrderLineID             string
	CustomerID              string
	ProductID               string
	ShipperID               string
	SalesRepID              string
	RegionID                string
	SupplierID              string
	ShippingMethodRequested string

	QuantityShipped float64
	SalePrice       float64
	UnitCost        float64
	WeightLb        float64
	ItemCount       float64

	ShippedWeightLb float64
	Revenue         float64
	Cost            float64
	Profit          float64

	Date           *time.Time
	ShipDate       *time.Time
	DeliveryDate   *time.Time
	DateExpected   *time.Time
	TransitDays    *int
	DeliveryStatus string

	CustomerName       *string
	ProductName        *string
	SKU                *string
	RegionName         *string
	Carrier            *string
	SupplierName       *string
	ShippingMethodName *string
	IsRetail           *bool
}
