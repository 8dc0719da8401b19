package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var warehouseDDL = []string{
	`CREATE TABLE orders (
		order_id TEXT PRIMARY KEY,
		customer_id TEXT,
		sales_rep_id TEXT,
		order_status TEXT,
		shipping_method_requested TEXT,
		created_at DATETIME,
		date_ordered DATETIME,
		date_expected DATETIME,
		date_shipped DATETIME
	)`,
	`CREATE TABLE order_lines (
		order_line_id TEXT PRIMARY KEY,
		order_id TEXT,
		product_id TEXT,
		shipper_id TEXT,
		quantity_shipped REAL,
		price REAL,
		cost_price REAL,
		date_shipped DATETIME,
		created_at DATETIME
	)`,
	`CREATE TABLE customers (
		customer_id TEXT PRIMARY KEY,
		name TEXT,
		region_id TEXT,
		is_retail BOOLEAN
	)`,
	`CREATE TABLE products (
		product_id TEXT PRIMARY KEY,
		sku TEXT,
		description TEXT,
		unit_of_billing_id INTEGER,
		supplier_id TEXT,
		list_price REAL,
		cost_price REAL
	)`,
	`CREATE TABLE regions (region_id TEXT PRIMARY KEY, name TEXT)`,
	`CREATE TABLE shippers (shipper_id TEXT PRIMARY KEY, name TEXT)`,
	`CREATE TABLE shipping_methods (shipping_method_id TEXT PRIMARY KEY, name TEXT)`,
	`CREATE TABLE suppliers (supplier_id TEXT PRIMARY KEY, name TEXT)`,
	`CREATE TABLE packs (
		pack_id TEXT PRIMARY KEY,
		picked_for_order_line TEXT,
		weight_lb REAL,
		item_count REAL,
		shipped_at DATETIME
	)`,
}

func setupWarehouseDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, stmt := range warehouseDDL {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrdersFiltersStatusAndWindow(t *testing.T) {
	db := setupWarehouseDB(t)
	repo := NewRepository(db)

	insert := `INSERT INTO orders
		(order_id, customer_id, sales_rep_id, order_status, shipping_method_requested, created_at, date_ordered, date_expected, date_shipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	require.NoError(t, db.Exec(insert,
		"o1", "c1", "rep1", "packed", "Ground",
		day("2023-01-05"), day("2023-01-05"), day("2023-01-10"), day("2023-01-07"),
	).Error)
	require.NoError(t, db.Exec(insert,
		"o2", "c1", "rep1", "packed", "Air",
		day("2022-12-20"), day("2022-12-20"), nil, nil,
	).Error)
	require.NoError(t, db.Exec(insert,
		"o3", "c2", "rep2", "draft", "Ground",
		day("2023-01-06"), day("2023-01-06"), nil, nil,
	).Error)

	rows, err := repo.Orders(context.Background(), day("2023-01-01"), day("2023-01-31"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, "o1", got.OrderID)
	assert.Equal(t, "c1", got.CustomerID)
	assert.Equal(t, "rep1", got.SalesRepID)
	assert.Equal(t, "Ground", got.ShippingMethodRequested)
	assert.Equal(t, day("2023-01-05"), got.CreatedAt.UTC())
	require.NotNil(t, got.ShipDate)
	assert.Equal(t, day("2023-01-07"), got.ShipDate.UTC())
	require.NotNil(t, got.DateExpected)
	assert.Equal(t, day("2023-01-10"), got.DateExpected.UTC())
}

func TestOrderLinesWindowAndNullNumerics(t *testing.T) {
	db := setupWarehouseDB(t)
	repo := NewRepository(db)

	insert := `INSERT INTO order_lines
		(order_line_id, order_id, product_id, shipper_id, quantity_shipped, price, cost_price, date_shipped, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	require.NoError(t, db.Exec(insert,
		"l1", "o1", "p1", "s1", 2.0, 10.0, 4.0, day("2023-01-06"), day("2023-01-05"),
	).Error)
	require.NoError(t, db.Exec(insert,
		"l2", "o1", "p1", "s1", nil, nil, nil, nil, day("2023-01-08"),
	).Error)
	require.NoError(t, db.Exec(insert,
		"l3", "o2", "p2", "s1", 1.0, 5.0, 2.0, nil, day("2022-11-01"),
	).Error)

	rows, err := repo.OrderLines(context.Background(), day("2023-01-01"), day("2023-01-31"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]int{}
	for i, row := range rows {
		byID[row.OrderLineID] = i
	}
	require.Contains(t, byID, "l1")
	require.Contains(t, byID, "l2")

	l1 := rows[byID["l1"]]
	require.NotNil(t, l1.SalePrice)
	assert.Equal(t, 10.0, *l1.SalePrice)
	require.NotNil(t, l1.UnitCost)
	assert.Equal(t, 4.0, *l1.UnitCost)
	require.NotNil(t, l1.QuantityShipped)
	assert.Equal(t, 2.0, *l1.QuantityShipped)

	l2 := rows[byID["l2"]]
	assert.Nil(t, l2.QuantityShipped)
	assert.Nil(t, l2.SalePrice)
	assert.Nil(t, l2.UnitCost)
	assert.Nil(t, l2.DateShipped)
}

func TestDimensionTablesMapAliases(t *testing.T) {
	db := setupWarehouseDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Exec(
		`INSERT INTO customers (customer_id, name, region_id, is_retail) VALUES (?, ?, ?, ?)`,
		"c1", "Acme Retail", "r1", true,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO products (product_id, sku, description, unit_of_billing_id, supplier_id, list_price, cost_price) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"p1", "SKU-1", "Widget", 3, "sup1", 12.5, 4.0,
	).Error)
	require.NoError(t, db.Exec(`INSERT INTO regions (region_id, name) VALUES (?, ?)`, "r1", "North").Error)
	require.NoError(t, db.Exec(`INSERT INTO shippers (shipper_id, name) VALUES (?, ?)`, "s1", "FastShip").Error)
	require.NoError(t, db.Exec(`INSERT INTO shipping_methods (shipping_method_id, name) VALUES (?, ?)`, "m1", "Ground").Error)
	require.NoError(t, db.Exec(`INSERT INTO suppliers (supplier_id, name) VALUES (?, ?)`, "sup1", "WidgetCo").Error)

	customers, err := repo.Customers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Acme Retail", customers[0].CustomerName)
	require.NotNil(t, customers[0].IsRetail)
	assert.True(t, *customers[0].IsRetail)

	products, err := repo.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].ProductName)
	require.NotNil(t, products[0].UnitOfBillingID)
	assert.Equal(t, int64(3), *products[0].UnitOfBillingID)
	require.NotNil(t, products[0].ProductListPrice)
	assert.Equal(t, 12.5, *products[0].ProductListPrice)

	regions, err := repo.Regions(ctx)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "North", regions[0].RegionName)

	shippers, err := repo.Shippers(ctx)
	require.NoError(t, err)
	require.Len(t, shippers, 1)
	assert.Equal(t, "FastShip", shippers[0].Carrier)

	methods, err := repo.ShippingMethods(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "m1", methods[0].SMID)
	assert.Equal(t, "Ground", methods[0].ShippingMethodName)

	suppliers, err := repo.Suppliers(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "WidgetCo", suppliers[0].SupplierName)
}

func TestPacksJoinWindowLines(t *testing.T) {
	db := setupWarehouseDB(t)
	repo := NewRepository(db)

	lineInsert := `INSERT INTO order_lines
		(order_line_id, order_id, product_id, shipper_id, quantity_shipped, price, cost_price, date_shipped, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	require.NoError(t, db.Exec(lineInsert, "l1", "o1", "p1", "s1", 1.0, 1.0, 1.0, nil, day("2023-01-05")).Error)
	require.NoError(t, db.Exec(lineInsert, "l2", "o2", "p1", "s1", 1.0, 1.0, 1.0, nil, day("2022-06-01")).Error)

	packInsert := `INSERT INTO packs (pack_id, picked_for_order_line, weight_lb, item_count, shipped_at) VALUES (?, ?, ?, ?, ?)`
	require.NoError(t, db.Exec(packInsert, "pk1", "l1", 3.5, 2.0, day("2023-01-08")).Error)
	require.NoError(t, db.Exec(packInsert, "pk2", "l1", 1.5, 1.0, day("2023-01-09")).Error)
	require.NoError(t, db.Exec(packInsert, "pk3", "l2", 9.0, 4.0, day("2022-06-03")).Error)
	require.NoError(t, db.Exec(packInsert, "pk4", "ghost", 2.0, 1.0, nil).Error)

	rows, err := repo.Packs(context.Background(), day("2023-01-01"), day("2023-01-31"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.Equal(t, "l1", row.PickedForOrderLine)
		require.NotNil(t, row.WeightLb)
		require.NotNil(t, row.ItemCount)
		require.NotNil(t, row.DeliveryDate)
	}
}
