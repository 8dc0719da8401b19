package service

import (
	"context"
	"time"

	analyticsdomain "github.com/smallbiznis/orderlens/internal/analytics/domain"
	"github.com/smallbiznis/orderlens/internal/config"
	"github.com/smallbiznis/orderlens/internal/dataset"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
	"go.uber.org/zap"
)

// reportFake serves a fixed dataset; analytics math is tested without a
// warehouse.
type reportFake struct {
	records []dataset.Record
	err     error
	calls   int
}

func (f *reportFake) Dataset(ctx context.Context, query reportdomain.Query) ([]dataset.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *reportFake) Options(ctx context.Context) (reportdomain.FilterOptions, error) {
	return reportdomain.FilterOptions{}, nil
}

func newTestService(records []dataset.Record) (analyticsdomain.Service, *reportFake) {
	fake := &reportFake{records: records}
	svc := NewService(Params{
		ReportCfg: &config.ReportConfigHolder{},
		Log:       zap.NewNop(),
		Report:    fake,
	})
	return svc, fake
}

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

func strPtr(s string) *string { return &s }

// rec builds a minimal dated record for aggregate tests.
func rec(customer, order, date string, revenue float64) dataset.Record {
	r := dataset.Record{
		OrderID:    order,
		CustomerID: customer,
		Revenue:    revenue,
		Date:       dayPtr(date),
	}
	if customer != "" {
		r.CustomerName = strPtr("Customer " + customer)
	}
	return r
}

func recProduct(customer, order, product, productName, date string, revenue float64) dataset.Record {
	r := rec(customer, order, date, revenue)
	r.ProductID = product
	if productName != "" {
		r.ProductName = strPtr(productName)
	}
	return r
}
