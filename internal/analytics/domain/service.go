package domain

import (
	"context"

	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
	"github.com/smallbiznis/orderlens/pkg/db/pagination"
)

// Service computes the report aggregates over the filtered dataset.
// Every method is a pure recomputation per request; only the underlying
// dataset is cached.
type Service interface {
	Summary(ctx context.Context, query reportdomain.Query) (Summary, error)
	RFM(ctx context.Context, query reportdomain.Query) ([]RFMRow, error)
	Cohorts(ctx context.Context, query reportdomain.Query) (CohortMatrix, error)
	Churn(ctx context.Context, query reportdomain.Query) ([]ChurnPoint, error)
	CLV(ctx context.Context, query reportdomain.Query) ([]CLVRow, error)
	Intervals(ctx context.Context, query reportdomain.Query) (IntervalsResult, error)
	MonthlyCustomers(ctx context.Context, query reportdomain.Query) ([]MonthlyCustomersPoint, error)
	TopProducts(ctx context.Context, query reportdomain.Query) ([]TopProduct, error)
	Seasonality(ctx context.Context, query reportdomain.Query) (SeasonalityMatrix, error)
	Customers(ctx context.Context, query reportdomain.Query, page pagination.Pagination) ([]CustomerSummary, *pagination.PageInfo, error)
	Customer(ctx context.Context, query reportdomain.Query, customerID string) (CustomerDetail, error)
}
