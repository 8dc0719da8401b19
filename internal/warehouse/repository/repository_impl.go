package repository

import (
	"context"
	"time"

	warehousedomain "github.com/smallbiznis/orderlens/internal/warehouse/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) warehousedomain.Repository {
	return &repository{db: db}
}

func (r *repository) Orders(ctx context.Context, start, end time.Time) ([]warehousedomain.OrderRow, error) {
	var rows []warehousedomain.OrderRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT order_id, customer_id, sales_rep_id, created_at AS created_at_order,
		        date_ordered, date_expected, date_shipped AS ship_date, shipping_method_requested
		 FROM orders
		 WHERE order_status = 'packed' AND created_at BETWEEN ? AND ?`,
		start,
		end,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) OrderLines(ctx context.Context, start, end time.Time) ([]warehousedomain.OrderLineRow, error) {
	var rows []warehousedomain.OrderLineRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT order_line_id, order_id, product_id, shipper_id, quantity_shipped,
		        price AS sale_price, cost_price AS unit_cost, date_shipped
		 FROM order_lines
		 WHERE created_at BETWEEN ? AND ?`,
		start,
		end,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Customers(ctx context.Context) ([]warehousedomain.CustomerRow, error) {
	var rows []warehousedomain.CustomerRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT customer_id, name AS customer_name, region_id, is_retail FROM customers`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Products(ctx context.Context) ([]warehousedomain.ProductRow, error) {
	var rows []warehousedomain.ProductRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT product_id, sku, description AS product_name, unit_of_billing_id,
		        supplier_id, list_price AS product_list_price, cost_price
		 FROM products`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Regions(ctx context.Context) ([]warehousedomain.RegionRow, error) {
	var rows []warehousedomain.RegionRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT region_id, name AS region_name FROM regions`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Shippers(ctx context.Context) ([]warehousedomain.ShipperRow, error) {
	var rows []warehousedomain.ShipperRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT shipper_id, name AS carrier FROM shippers`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ShippingMethods(ctx context.Context) ([]warehousedomain.ShippingMethodRow, error) {
	var rows []warehousedomain.ShippingMethodRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT shipping_method_id AS sm_id, name AS shipping_method_name FROM shipping_methods`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Suppliers(ctx context.Context) ([]warehousedomain.SupplierRow, error) {
	var rows []warehousedomain.SupplierRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT supplier_id, name AS supplier_name FROM suppliers`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Packs restricts to packs picked for lines created in the window so the
// aggregate joins cleanly against the bounded order_lines extract.
func (r *repository) Packs(ctx context.Context, start, end time.Time) ([]warehousedomain.PackRow, error) {
	var rows []warehousedomain.PackRow
	err := r.db.WithContext(ctx).Raw(
		`WITH ol AS (
		     SELECT order_line_id FROM order_lines WHERE created_at BETWEEN ? AND ?
		 )
		 SELECT p.picked_for_order_line, p.weight_lb, p.item_count, p.shipped_at AS delivery_date
		 FROM packs p
		 JOIN ol ON p.picked_for_order_line = ol.order_line_id`,
		start,
		end,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
