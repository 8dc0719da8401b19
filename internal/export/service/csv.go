package service

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/smallbiznis/orderlens/internal/dataset"
)

var csvHeader = []string{
	"order_id", "order_line_id", "date",
	"customer_id", "customer_name",
	"product_id", "product_name", "sku",
	"region", "carrier", "supplier", "shipping_method", "channel",
	"quantity_shipped", "item_count", "weight_lb", "shipped_weight_lb",
	"sale_price", "unit_cost", "revenue", "cost", "profit",
	"ship_date", "expected_date", "delivery_date", "transit_days", "delivery_status",
}

func writeCSV(records []dataset.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range records {
		if err := w.Write(csvRow(&records[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvRow(rec *dataset.Record) []string {
	return []string{
		rec.OrderID, rec.OrderLineID, csvDate(rec.Date),
		rec.CustomerID, csvStr(rec.CustomerName),
		rec.ProductID, csvStr(rec.ProductName), csvStr(rec.SKU),
		csvStr(rec.RegionName), csvStr(rec.Carrier), csvStr(rec.SupplierName),
		csvStr(rec.ShippingMethodName), csvChannel(rec.IsRetail),
		csvFloat(rec.QuantityShipped), csvFloat(rec.ItemCount),
		csvFloat(rec.WeightLb), csvFloat(rec.ShippedWeightLb),
		csvFloat(rec.SalePrice), csvFloat(rec.UnitCost),
		csvFloat(rec.Revenue), csvFloat(rec.Cost), csvFloat(rec.Profit),
		csvDate(rec.ShipDate), csvDate(rec.DateExpected), csvDate(rec.DeliveryDate),
		csvInt(rec.TransitDays), rec.DeliveryStatus,
	}
}

func csvFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func csvInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func csvStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func csvDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}

func csvChannel(isRetail *bool) string {
	switch {
	case isRetail == nil:
		return ""
	case *isRetail:
		return dataset.ChannelRetail
	default:
		return dataset.ChannelWholesale
	}
}
