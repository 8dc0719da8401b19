package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	pkgdb "github.com/smallbiznis/orderlens/pkg/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const weightBillingCode = 3

// AutoMigrate builds the warehouse schema from the seed models. The
// postgres path runs SQL migrations instead; this covers sqlite and
// mysql development setups.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	return db.AutoMigrate(
		&Order{},
		&OrderLine{},
		&Customer{},
		&Product{},
		&Region{},
		&Shipper{},
		&ShippingMethod{},
		&Supplier{},
		&Pack{},
	)
}

// EnsureDemoWarehouse loads a small deterministic order history so a
// fresh install renders non-empty reports. It is a no-op once any
// order exists.
func EnsureDemoWarehouse(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var count int64
	if err := db.WithContext(ctx).Model(&Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedDimensions(tx); err != nil {
			return err
		}
		return seedOrders(tx, node)
	})
	if err != nil && pkgdb.IsDuplicateKeyErr(err) {
		// Another replica won the seeding race between the count
		// check and the insert; its rows are as good as ours.
		return nil
	}
	return err
}

var (
	demoRegions = []Region{
		{RegionID: "r-north", Name: "North"},
		{RegionID: "r-south", Name: "South"},
		{RegionID: "r-east", Name: "East"},
		{RegionID: "r-west", Name: "West"},
	}
	demoSuppliers = []Supplier{
		{SupplierID: "sup-1", Name: "Acme Supply"},
		{SupplierID: "sup-2", Name: "Border Goods"},
		{SupplierID: "sup-3", Name: "Crate Works"},
	}
	demoShippers = []Shipper{
		{ShipperID: "sh-1", Name: "FastShip"},
		{ShipperID: "sh-2", Name: "Roadrunner"},
		{ShipperID: "sh-3", Name: "Bluebird Freight"},
	}
	demoMethods = []ShippingMethod{
		{ShippingMethodID: "sm-1", Name: "Ground"},
		{ShippingMethodID: "sm-2", Name: "Air"},
		{ShippingMethodID: "sm-3", Name: "Freight"},
	}
)

func demoProducts() []Product {
	weightCode := int64(weightBillingCode)
	unitCode := int64(1)
	return []Product{
		{ProductID: "p-1", SKU: "WID-100", Description: "Widget", UnitOfBillingID: &unitCode, SupplierID: "sup-1", ListPrice: f(12.5), CostPrice: f(7)},
		{ProductID: "p-2", SKU: "GAD-200", Description: "Gadget", UnitOfBillingID: &unitCode, SupplierID: "sup-1", ListPrice: f(24), CostPrice: f(15)},
		{ProductID: "p-3", SKU: "SPR-300", Description: "Sprocket", UnitOfBillingID: &unitCode, SupplierID: "sup-2", ListPrice: f(5.25), CostPrice: f(2.8)},
		{ProductID: "p-4", SKU: "COG-400", Description: "Cog Assembly", UnitOfBillingID: &unitCode, SupplierID: "sup-2", ListPrice: f(48), CostPrice: f(31)},
		{ProductID: "p-5", SKU: "BRK-500", Description: "Bracket Kit", UnitOfBillingID: &unitCode, SupplierID: "sup-3", ListPrice: f(9.75), CostPrice: f(5.1)},
		{ProductID: "p-6", SKU: "SHT-600", Description: "Bulk Steel Shot", UnitOfBillingID: &weightCode, SupplierID: "sup-3", ListPrice: f(1.8), CostPrice: f(0.9)},
	}
}

func demoCustomers() []Customer {
	names := []string{
		"Harbor Materials", "Pine & Co", "Quarry Direct", "Summit Retail",
		"Littleton Hardware", "Mesa Industrial", "Gully Outfitters", "Tern Wholesale",
	}
	customers := make([]Customer, 0, len(names))
	for i, name := range names {
		retail := i%2 == 0
		customers = append(customers, Customer{
			CustomerID: fmt.Sprintf("c-%d", i+1),
			Name:       name,
			RegionID:   demoRegions[i%len(demoRegions)].RegionID,
			IsRetail:   &retail,
		})
	}
	return customers
}

func seedDimensions(tx *gorm.DB) error {
	if err := tx.Create(&demoRegions).Error; err != nil {
		return err
	}
	if err := tx.Create(&demoSuppliers).Error; err != nil {
		return err
	}
	if err := tx.Create(&demoShippers).Error; err != nil {
		return err
	}
	if err := tx.Create(&demoMethods).Error; err != nil {
		return err
	}
	products := demoProducts()
	if err := tx.Create(&products).Error; err != nil {
		return err
	}
	customers := demoCustomers()
	return tx.Create(&customers).Error
}

// seedOrders spreads five orders per month over the six completed
// months before the current one, so the whole history sits in the past
// no matter when seeding runs. The offsets are index arithmetic, so
// reseeding an empty database always produces the same shape: a mix of
// on-time, late and still-pending deliveries across both channels.
func seedOrders(tx *gorm.DB, node *snowflake.Node) error {
	products := demoProducts()
	customers := demoCustomers()
	anchor := time.Now().UTC()
	monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		orders []Order
		lines  []OrderLine
		packs  []Pack
	)

	seq := 0
	for monthsAgo := 6; monthsAgo >= 1; monthsAgo-- {
		base := monthStart.AddDate(0, -monthsAgo, 0)
		for k := 0; k < 5; k++ {
			seq++
			customer := customers[seq%len(customers)]
			created := base.AddDate(0, 0, (k*5)%26).Add(time.Duration(9+k) * time.Hour)
			ordered := datatypes.Date(created)
			expected := datatypes.Date(created.AddDate(0, 0, 4))
			shipped := created.AddDate(0, 0, 1)

			order := Order{
				OrderID:                 node.Generate().String(),
				CustomerID:              customer.CustomerID,
				SalesRepID:              fmt.Sprintf("rep-%d", seq%3+1),
				OrderStatus:             "packed",
				ShippingMethodRequested: demoMethods[seq%len(demoMethods)].ShippingMethodID,
				CreatedAt:               created,
				DateOrdered:             &ordered,
				DateExpected:            &expected,
				DateShipped:             &shipped,
			}
			orders = append(orders, order)

			lineCount := 1 + seq%2
			for l := 0; l < lineCount; l++ {
				product := products[(seq+l)%len(products)]
				qty := float64(1 + (seq+l)%3)
				line := OrderLine{
					OrderLineID:     node.Generate().String(),
					OrderID:         order.OrderID,
					ProductID:       product.ProductID,
					ShipperID:       demoShippers[(seq+l)%len(demoShippers)].ShipperID,
					QuantityShipped: &qty,
					Price:           product.ListPrice,
					CostPrice:       product.CostPrice,
					CreatedAt:       created,
					DateShipped:     &shipped,
				}
				lines = append(lines, line)

				// every seventh line ships without a pack and stays Pending
				if seq%7 == 0 && l == 0 {
					continue
				}
				weight := qty * 2.5
				delivery := shipped.AddDate(0, 0, 1+(seq+l)%5)
				packs = append(packs, Pack{
					PackID:             node.Generate().String(),
					PickedForOrderLine: line.OrderLineID,
					WeightLb:           &weight,
					ItemCount:          &qty,
					ShippedAt:          &delivery,
				})
			}
		}
	}

	if err := tx.Create(&orders).Error; err != nil {
		return err
	}
	if err := tx.Create(&lines).Error; err != nil {
		return err
	}
	return tx.Create(&packs).Error
}

func f(v float64) *float64 { return &v }
