package seed

import (
	"time"

	"gorm.io/datatypes"
)

// Table-bound models for the nine warehouse tables. AutoMigrate uses
// them to build the schema on dialects that skip the SQL migrations.

type Order struct {
	OrderID                 string          `gorm:"column:order_id;primaryKey"`
	CustomerID              string          `gorm:"column:customer_id"`
	SalesRepID              string          `gorm:"column:sales_rep_id"`
	OrderStatus             string          `gorm:"column:order_status"`
	ShippingMethodRequested string          `gorm:"column:shipping_method_requested"`
	CreatedAt               time.Time       `gorm:"column:created_at"`
	DateOrdered             *datatypes.Date `gorm:"column:date_ordered"`
	DateExpected            *datatypes.Date `gorm:"column:date_expected"`
	DateShipped             *time.Time      `gorm:"column:date_shipped"`
}

func (Order) TableName() string { return "orders" }

type OrderLine struct {
	OrderLineID     string     `gorm:"column:order_line_id;primaryKey"`
	OrderID         string     `gorm:"column:order_id;index"`
	ProductID       string     `gorm:"column:product_id"`
	ShipperID       string     `gorm:"column:shipper_id"`
	QuantityShipped *float64   `gorm:"column:quantity_shipped"`
	Price           *float64   `gorm:"column:price"`
	CostPrice       *float64   `gorm:"column:cost_price"`
	CreatedAt       time.Time  `gorm:"column:created_at;index"`
	DateShipped     *time.Time `gorm:"column:date_shipped"`
}

func (OrderLine) TableName() string { return "order_lines" }

type Customer struct {
	CustomerID string `gorm:"column:customer_id;primaryKey"`
	Name       string `gorm:"column:name"`
	RegionID   string `gorm:"column:region_id"`
	IsRetail   *bool  `gorm:"column:is_retail"`
}

func (Customer) TableName() string { return "customers" }

type Product struct {
	ProductID       string   `gorm:"column:product_id;primaryKey"`
	SKU             string   `gorm:"column:sku"`
	Description     string   `gorm:"column:description"`
	UnitOfBillingID *int64   `gorm:"column:unit_of_billing_id"`
	SupplierID      string   `gorm:"column:supplier_id"`
	ListPrice       *float64 `gorm:"column:list_price"`
	CostPrice       *float64 `gorm:"column:cost_price"`
}

func (Product) TableName() string { return "products" }

type Region struct {
	RegionID string `gorm:"column:region_id;primaryKey"`
	Name     string `gorm:"column:name"`
}

func (Region) TableName() string { return "regions" }

type Shipper struct {
	ShipperID string `gorm:"column:shipper_id;primaryKey"`
	Name      string `gorm:"column:name"`
}

func (Shipper) TableName() string { return "shippers" }

type ShippingMethod struct {
	ShippingMethodID string `gorm:"column:shipping_method_id;primaryKey"`
	Name             string `gorm:"column:name"`
}

func (ShippingMethod) TableName() string { return "shipping_methods" }

type Supplier struct {
	SupplierID string `gorm:"column:supplier_id;primaryKey"`
	Name       string `gorm:"column:name"`
}

func (Supplier) TableName() string { return "suppliers" }

type Pack struct {
	PackID             string     `gorm:"column:pack_id;primaryKey"`
	PickedForOrderLine string     `gorm:"column:picked_for_order_line;index"`
	WeightLb           *float64   `gorm:"column:weight_lb"`
	ItemCount          *float64   `gorm:"column:item_count"`
	ShippedAt          *time.Time `gorm:"column:shipped_at"`
}

func (Pack) TableName() string { return "packs" }
