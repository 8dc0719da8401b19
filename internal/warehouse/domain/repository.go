package domain

import (
	"context"
	"time"
)

// Repository runs the raw warehouse queries. Fact tables are bounded by
// the creation-date window; dimension tables are fetched whole.
type Repository interface {
	Orders(ctx context.Context, start, end time.Time) ([]OrderRow, error)
	OrderLines(ctx context.Context, start, end time.Time) ([]OrderLineRow, error)
	Customers(ctx context.Context) ([]CustomerRow, error)
	Products(ctx context.Context) ([]ProductRow, error)
	Regions(ctx context.Context) ([]RegionRow, error)
	Shippers(ctx context.Context) ([]ShipperRow, error)
	ShippingMethods(ctx context.Context) ([]ShippingMethodRow, error)
	Suppliers(ctx context.Context) ([]SupplierRow, error)
	Packs(ctx context.Context, start, end time.Time) ([]PackRow, error)
}
