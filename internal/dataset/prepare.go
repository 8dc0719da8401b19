package dataset

import (
	"math"
	"time"

	warehousedomain "github.com/smallbiznis/orderlens/internal/warehouse/domain"
)

// unit_of_billing_id value for weight-priced products.
const weightBillingCode = 3

type packSummary struct {
	weightLb     float64
	itemCount    float64
	deliveryDate *time.Time
}

// Prepare flattens the raw tables into one Record per (order, line):
// orders inner-join order_lines, dimensions left-joined, packs rolled
// up per line, then derived measures. The result is immutable input for
// the filter layer and the aggregators; callers cache it per range.
func Prepare(raw *warehousedomain.RawTables) ([]Record, error) {
	if raw == nil {
		return nil, ErrNilRawTables
	}

	orders := make(map[string]warehousedomain.OrderRow, len(raw.Orders))
	for _, o := range raw.Orders {
		if key := NormalizeKey(o.OrderID); key != "" {
			orders[key] = o
		}
	}

	customers := make(map[string]warehousedomain.CustomerRow, len(raw.Customers))
	for _, c := range raw.Customers {
		if key := NormalizeKey(c.CustomerID); key != "" {
			customers[key] = c
		}
	}

	products := make(map[string]warehousedomain.ProductRow, len(raw.Products))
	for _, p := range raw.Products {
		if key := NormalizeKey(p.ProductID); key != "" {
			products[key] = p
		}
	}

	regions := make(map[string]warehousedomain.RegionRow, len(raw.Regions))
	for _, r := range raw.Regions {
		if key := NormalizeKey(r.RegionID); key != "" {
			regions[key] = r
		}
	}

	shippers := make(map[string]warehousedomain.ShipperRow, len(raw.Shippers))
	for _, s := range raw.Shippers {
		if key := NormalizeKey(s.ShipperID); key != "" {
			shippers[key] = s
		}
	}

	suppliers := make(map[string]warehousedomain.SupplierRow, len(raw.Suppliers))
	for _, s := range raw.Suppliers {
		if key := NormalizeKey(s.SupplierID); key != "" {
			suppliers[key] = s
		}
	}

	// The shipping_methods table keys by its own id; orders reference it
	// through shipping_method_requested, so the lookup is rekeyed to the
	// order-side column before joining.
	methods := make(map[string]warehousedomain.ShippingMethodRow, len(raw.ShippingMethods))
	for _, m := range raw.ShippingMethods {
		if key := NormalizeKey(m.SMID); key != "" {
			methods[key] = m
		}
	}

	packs := aggregatePacks(raw.Packs)

	records := make([]Record, 0, len(raw.OrderLines))
	for _, line := range raw.OrderLines {
		order, ok := orders[NormalizeKey(line.OrderID)]
		if !ok {
			// inner semantics: a line without a packed order is dropped
			continue
		}

		rec := Record{
			OrderID:                 NormalizeKey(line.OrderID),
			OrderLineID:             NormalizeKey(line.OrderLineID),
			CustomerID:              NormalizeKey(order.CustomerID),
			ProductID:               NormalizeKey(line.ProductID),
			ShipperID:               NormalizeKey(line.ShipperID),
			SalesRepID:              NormalizeKey(order.SalesRepID),
			ShippingMethodRequested: NormalizeKey(order.ShippingMethodRequested),
		}

		var unitOfBilling int64
		if c, ok := customers[rec.CustomerID]; ok {
			rec.CustomerName = strPtr(c.CustomerName)
			rec.RegionID = NormalizeKey(c.RegionID)
			rec.IsRetail = copyBool(c.IsRetail)
		}
		if p, ok := products[rec.ProductID]; ok {
			rec.ProductName = strPtr(p.ProductName)
			rec.SKU = strPtr(p.SKU)
			rec.SupplierID = NormalizeKey(p.SupplierID)
			if p.UnitOfBillingID != nil {
				unitOfBilling = *p.UnitOfBillingID
			}
		}
		if r, ok := regions[rec.RegionID]; ok {
			rec.RegionName = strPtr(r.RegionName)
		}
		if s, ok := shippers[rec.ShipperID]; ok {
			rec.Carrier = strPtr(s.Carrier)
		}
		if s, ok := suppliers[rec.SupplierID]; ok {
			rec.SupplierName = strPtr(s.SupplierName)
		}
		if m, ok := methods[rec.ShippingMethodRequested]; ok {
			rec.ShippingMethodName = strPtr(m.ShippingMethodName)
		}

		rec.QuantityShipped = coerce(line.QuantityShipped)
		rec.SalePrice = coerce(line.SalePrice)
		rec.UnitCost = coerce(line.UnitCost)
		if agg, ok := packs[rec.OrderLineID]; ok {
			rec.WeightLb = agg.weightLb
			rec.ItemCount = agg.itemCount
			rec.DeliveryDate = copyTime(agg.deliveryDate)
		}

		if unitOfBilling == weightBillingCode && rec.WeightLb > 0 {
			rec.ShippedWeightLb = rec.WeightLb
			rec.Revenue = rec.WeightLb * rec.SalePrice
			rec.Cost = rec.WeightLb * rec.UnitCost
		} else {
			perItem := 0.0
			if rec.ItemCount != 0 {
				perItem = rec.WeightLb / rec.ItemCount
			}
			rec.ShippedWeightLb = rec.ItemCount * perItem
			// A line with no pack rollup still earns revenue on the
			// quantity it shipped.
			basis := rec.ItemCount
			if basis == 0 {
				basis = rec.QuantityShipped
			}
			rec.Revenue = basis * rec.SalePrice
			rec.Cost = basis * rec.UnitCost
		}
		rec.Profit = rec.Revenue - rec.Cost

		if !order.CreatedAt.IsZero() {
			day := truncateDay(order.CreatedAt)
			rec.Date = &day
		}
		rec.ShipDate = copyTime(order.ShipDate)
		rec.DateExpected = copyTime(order.DateExpected)

		if rec.ShipDate != nil && rec.DeliveryDate != nil {
			days := int(rec.DeliveryDate.Sub(*rec.ShipDate) / (24 * time.Hour))
			if days < 0 {
				days = 0
			}
			rec.TransitDays = &days
		}

		switch {
		case rec.DeliveryDate == nil || rec.DateExpected == nil:
			rec.DeliveryStatus = DeliveryPending
		case rec.DeliveryDate.After(*rec.DateExpected):
			rec.DeliveryStatus = DeliveryLate
		default:
			rec.DeliveryStatus = DeliveryOnTime
		}

		records = append(records, rec)
	}

	return records, nil
}

func aggregatePacks(rows []warehousedomain.PackRow) map[string]packSummary {
	out := make(map[string]packSummary, len(rows))
	for _, p := range rows {
		key := NormalizeKey(p.PickedForOrderLine)
		if key == "" {
			continue
		}
		agg := out[key]
		agg.weightLb += coerce(p.WeightLb)
		agg.itemCount += coerce(p.ItemCount)
		if p.DeliveryDate != nil && (agg.deliveryDate == nil || p.DeliveryDate.After(*agg.deliveryDate)) {
			agg.deliveryDate = copyTime(p.DeliveryDate)
		}
		out[key] = agg
	}
	return out
}

func coerce(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
