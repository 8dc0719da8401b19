package dataset

import (
	"testing"
	"time"

	warehousedomain "github.com/smallbiznis/orderlens/internal/warehouse/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func f64(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

func TestPrepareNilRawTables(t *testing.T) {
	records, err := Prepare(nil)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, ErrNilRawTables)
}

// Packless line: quantities default to zero but revenue still follows
// the shipped quantity, and delivery fields stay pending.
func TestPreparePacklessLine(t *testing.T) {
	raw := &warehousedomain.RawTables{
		Orders: []warehousedomain.OrderRow{{
			OrderID:      "1",
			CustomerID:   "C1",
			CreatedAt:    time.Date(2023, 1, 5, 8, 30, 0, 0, time.UTC),
			ShipDate:     dayPtr("2023-01-07"),
			DateExpected: dayPtr("2023-01-10"),
		}},
		OrderLines: []warehousedomain.OrderLineRow{{
			OrderLineID:     "L1",
			OrderID:         "1",
			ProductID:       "P1",
			QuantityShipped: f64(2),
			SalePrice:       f64(10),
			UnitCost:        f64(4),
		}},
	}

	records, err := Prepare(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "1", rec.OrderID)
	assert.Equal(t, "L1", rec.OrderLineID)
	assert.Equal(t, "C1", rec.CustomerID)

	assert.Equal(t, 0.0, rec.ItemCount)
	assert.Equal(t, 0.0, rec.WeightLb)
	assert.Equal(t, 0.0, rec.ShippedWeightLb)
	assert.InDelta(t, 20.0, rec.Revenue, 1e-9)
	assert.InDelta(t, 8.0, rec.Cost, 1e-9)
	assert.InDelta(t, 12.0, rec.Profit, 1e-9)

	require.NotNil(t, rec.Date)
	assert.Equal(t, day("2023-01-05"), *rec.Date)
	assert.Nil(t, rec.DeliveryDate)
	assert.Nil(t, rec.TransitDays)
	assert.Equal(t, DeliveryPending, rec.DeliveryStatus)

	// no dimension tables, so every lookup misses
	assert.Nil(t, rec.CustomerName)
	assert.Nil(t, rec.ProductName)
	assert.Nil(t, rec.RegionName)
	assert.Nil(t, rec.IsRetail)
}

func TestPrepareJoinsAndPackRollup(t *testing.T) {
	raw := &warehousedomain.RawTables{
		Orders: []warehousedomain.OrderRow{{
			OrderID:                 "o1",
			CustomerID:              "c1",
			SalesRepID:              "rep9",
			CreatedAt:               time.Date(2023, 1, 5, 14, 0, 0, 0, time.UTC),
			ShipDate:                dayPtr("2023-01-07"),
			DateExpected:            dayPtr("2023-01-10"),
			ShippingMethodRequested: "m1",
		}},
		OrderLines: []warehousedomain.OrderLineRow{{
			OrderLineID:     "l1",
			OrderID:         "o1",
			ProductID:       "p1",
			ShipperID:       "sh1",
			QuantityShipped: f64(9),
			SalePrice:       f64(10),
			UnitCost:        f64(4),
		}},
		Customers: []warehousedomain.CustomerRow{{
			CustomerID:   "c1",
			CustomerName: "Acme Retail",
			RegionID:     "r1",
			IsRetail:     boolPtr(true),
		}},
		Products: []warehousedomain.ProductRow{{
			ProductID:       "p1",
			SKU:             "SKU-1",
			ProductName:     "Widget",
			UnitOfBillingID: i64(1),
			SupplierID:      "sup1",
		}},
		Regions:         []warehousedomain.RegionRow{{RegionID: "r1", RegionName: "North"}},
		Shippers:        []warehousedomain.ShipperRow{{ShipperID: "sh1", Carrier: "FastShip"}},
		ShippingMethods: []warehousedomain.ShippingMethodRow{{SMID: "m1", ShippingMethodName: "Ground"}},
		Suppliers:       []warehousedomain.SupplierRow{{SupplierID: "sup1", SupplierName: "WidgetCo"}},
		Packs: []warehousedomain.PackRow{
			{PickedForOrderLine: "l1", WeightLb: f64(3), ItemCount: f64(1), DeliveryDate: dayPtr("2023-01-08")},
			{PickedForOrderLine: "l1", WeightLb: f64(2), ItemCount: f64(1), DeliveryDate: dayPtr("2023-01-09")},
		},
	}

	records, err := Prepare(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "rep9", rec.SalesRepID)
	assert.Equal(t, "r1", rec.RegionID)
	assert.Equal(t, "sup1", rec.SupplierID)

	require.NotNil(t, rec.CustomerName)
	assert.Equal(t, "Acme Retail", *rec.CustomerName)
	require.NotNil(t, rec.ProductName)
	assert.Equal(t, "Widget", *rec.ProductName)
	require.NotNil(t, rec.SKU)
	assert.Equal(t, "SKU-1", *rec.SKU)
	require.NotNil(t, rec.RegionName)
	assert.Equal(t, "North", *rec.RegionName)
	require.NotNil(t, rec.Carrier)
	assert.Equal(t, "FastShip", *rec.Carrier)
	require.NotNil(t, rec.SupplierName)
	assert.Equal(t, "WidgetCo", *rec.SupplierName)
	require.NotNil(t, rec.ShippingMethodName)
	assert.Equal(t, "Ground", *rec.ShippingMethodName)
	require.NotNil(t, rec.IsRetail)
	assert.True(t, *rec.IsRetail)

	// pack rollup: weights sum, counts sum, latest delivery wins
	assert.InDelta(t, 5.0, rec.WeightLb, 1e-9)
	assert.InDelta(t, 2.0, rec.ItemCount, 1e-9)
	require.NotNil(t, rec.DeliveryDate)
	assert.Equal(t, day("2023-01-09"), *rec.DeliveryDate)

	// item-billed with a real pack count: no quantity fallback
	assert.InDelta(t, 20.0, rec.Revenue, 1e-9)
	assert.InDelta(t, 8.0, rec.Cost, 1e-9)
	assert.InDelta(t, 5.0, rec.ShippedWeightLb, 1e-9)

	require.NotNil(t, rec.TransitDays)
	assert.Equal(t, 2, *rec.TransitDays)
	assert.Equal(t, DeliveryOnTime, rec.DeliveryStatus)
}

func TestPrepareWeightBilledLine(t *testing.T) {
	raw := &warehousedomain.RawTables{
		Orders: []warehousedomain.OrderRow{{
			OrderID:    "o1",
			CustomerID: "c1",
			CreatedAt:  day("2023-02-01"),
		}},
		OrderLines: []warehousedomain.OrderLineRow{{
			OrderLineID: "l1",
			OrderID:     "o1",
			ProductID:   "p1",
			SalePrice:   f64(2),
			UnitCost:    f64(1),
		}},
		Products: []warehousedomain.ProductRow{{
			ProductID:       "p1",
			UnitOfBillingID: i64(3),
		}},
		Packs: []warehousedomain.PackRow{
			{PickedForOrderLine: "l1", WeightLb: f64(7.5), ItemCount: f64(3)},
		},
	}

	records, err := Prepare(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.InDelta(t, 7.5, rec.ShippedWeightLb, 1e-9)
	assert.InDelta(t, 15.0, rec.Revenue, 1e-9)
	assert.InDelta(t, 7.5, rec.Cost, 1e-9)
	assert.InDelta(t, 7.5, rec.Profit, 1e-9)
}

func TestPrepareNormalizesJoinKeys(t *testing.T) {
	raw := &warehousedomain.RawTables{
		Orders: []warehousedomain.OrderRow{{
			OrderID:    "007",
			CustomerID: " 42.0 ",
			CreatedAt:  day("2023-03-01"),
		}},
		OrderLines: []warehousedomain.OrderLineRow{{
			OrderLineID:     "9",
			OrderID:         "7.0",
			ProductID:       "p1",
			QuantityShipped: f64(1),
			SalePrice:       f64(5),
		}},
		Customers: []warehousedomain.CustomerRow{{
			CustomerID:   "42",
			CustomerName: "Answer Corp",
		}},
		Packs: []warehousedomain.PackRow{
			{PickedForOrderLine: "9.0", WeightLb: f64(1), ItemCount: f64(1)},
		},
	}

	records, err := Prepare(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "7", rec.OrderID)
	assert.Equal(t, "42", rec.CustomerID)
	require.NotNil(t, rec.CustomerName)
	assert.Equal(t, "Answer Corp", *rec.CustomerName)
	assert.InDelta(t, 1.0, rec.ItemCount, 1e-9)
}

func TestPrepareDropsOrphanLines(t *testing.T) {
	raw := &warehousedomain.RawTables{
		Orders: []warehousedomain.OrderRow{{
			OrderID:    "o1",
			CustomerID: "c1",
			CreatedAt:  day("2023-01-05"),
		}},
		OrderLines: []warehousedomain.OrderLineRow{
			{OrderLineID: "l1", OrderID: "o1", QuantityShipped: f64(1), SalePrice: f64(1)},
			{OrderLineID: "l2", OrderID: "missing", QuantityShipped: f64(1), SalePrice: f64(1)},
		},
	}

	records, err := Prepare(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "l1", records[0].OrderLineID)
}

func TestPrepareCoercesMissingNumerics(t *testing.T) {
	raw := &warehousedomain.RawTables{
		Orders: []warehousedomain.OrderRow{{
			OrderID:    "o1",
			CustomerID: "c1",
			CreatedAt:  day("2023-01-05"),
		}},
		OrderLines: []warehousedomain.OrderLineRow{{
			OrderLineID: "l1",
			OrderID:     "o1",
		}},
	}

	records, err := Prepare(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 0.0, rec.QuantityShipped)
	assert.Equal(t, 0.0, rec.SalePrice)
	assert.Equal(t, 0.0, rec.UnitCost)
	assert.Equal(t, 0.0, rec.Revenue)
	assert.Equal(t, 0.0, rec.Cost)
	assert.Equal(t, 0.0, rec.Profit)
}

func TestPrepareDeliveryStatusAndTransit(t *testing.T) {
	tests := []struct {
		name        string
		shipDate    *time.Time
		delivery    *time.Time
		expected    *time.Time
		wantStatus  string
		wantTransit *int
	}{
		{
			name:        "late with clipped transit",
			shipDate:    dayPtr("2023-01-10"),
			delivery:    dayPtr("2023-01-08"),
			expected:    dayPtr("2023-01-07"),
			wantStatus:  DeliveryLate,
			wantTransit: intPtr(0),
		},
		{
			name:        "pending when expectation missing",
			shipDate:    dayPtr("2023-01-10"),
			delivery:    dayPtr("2023-01-12"),
			expected:    nil,
			wantStatus:  DeliveryPending,
			wantTransit: intPtr(2),
		},
		{
			name:        "on time when delivered the expected day",
			shipDate:    dayPtr("2023-01-10"),
			delivery:    dayPtr("2023-01-12"),
			expected:    dayPtr("2023-01-12"),
			wantStatus:  DeliveryOnTime,
			wantTransit: intPtr(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &warehousedomain.RawTables{
				Orders: []warehousedomain.OrderRow{{
					OrderID:      "o1",
					CustomerID:   "c1",
					CreatedAt:    day("2023-01-05"),
					ShipDate:     tt.shipDate,
					DateExpected: tt.expected,
				}},
				OrderLines: []warehousedomain.OrderLineRow{{
					OrderLineID: "l1",
					OrderID:     "o1",
					SalePrice:   f64(1),
				}},
			}
			if tt.delivery != nil {
				raw.Packs = []warehousedomain.PackRow{{
					PickedForOrderLine: "l1",
					WeightLb:           f64(1),
					ItemCount:          f64(1),
					DeliveryDate:       tt.delivery,
				}}
			}

			records, err := Prepare(raw)
			require.NoError(t, err)
			require.Len(t, records, 1)

			rec := records[0]
			assert.Equal(t, tt.wantStatus, rec.DeliveryStatus)
			if tt.wantTransit == nil {
				assert.Nil(t, rec.TransitDays)
			} else {
				require.NotNil(t, rec.TransitDays)
				assert.Equal(t, *tt.wantTransit, *rec.TransitDays)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
