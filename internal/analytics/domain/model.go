package domain

import "time"

// Summary is the KPI card row for the filtered dataset.
type Summary struct {
	Customers         int     `json:"customers"`
	Orders            int     `json:"orders"`
	Revenue           float64 `json:"revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// RFMRow scores one customer. R runs 4→1 with recency (most recent =
// 4); F and M run 1→4 ascending. Segment concatenates the three digits.
type RFMRow struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	RecencyDays  int     `json:"recency_days"`
	Frequency    int     `json:"frequency"`
	Monetary     float64 `json:"monetary"`
	R            int     `json:"r"`
	F            int     `json:"f"`
	M            int     `json:"m"`
	Segment      string  `json:"segment"`
}

// CohortRow is one first-activity month: distinct-customer counts and
// retention ratios per elapsed month, padded with zeros to the matrix
// width.
type CohortRow struct {
	Cohort    string    `json:"cohort"`
	Size      int       `json:"size"`
	Counts    []int     `json:"counts"`
	Retention []float64 `json:"retention"`
}

// CohortMatrix is the retention table. Every row carries Periods
// columns, offset 0 first.
type CohortMatrix struct {
	Periods int         `json:"periods"`
	Cohorts []CohortRow `json:"cohorts"`
}

// ChurnPoint reports the churn rate into a month from the previous
// observed month. Rate is null when the earlier month had no
// customers.
type ChurnPoint struct {
	Month string   `json:"month"`
	Rate  *float64 `json:"rate"`
}

// CLVRow is one customer's lifetime revenue.
type CLVRow struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	CLV          float64 `json:"clv"`
}

// IntervalsResult pools inter-purchase gaps across customers.
type IntervalsResult struct {
	Count      int     `json:"count"`
	MeanDays   float64 `json:"mean_days"`
	MedianDays float64 `json:"median_days"`
	GapsDays   []int   `json:"gaps_days"`
}

// MonthlyCustomersPoint tracks the customer base for one month.
type MonthlyCustomersPoint struct {
	Month      string `json:"month"`
	Active     int    `json:"active"`
	New        int    `json:"new"`
	Cumulative int    `json:"cumulative"`
}

// TopProduct ranks a product by revenue in the filtered dataset.
type TopProduct struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Revenue     float64 `json:"revenue"`
}

// SeasonalityMatrix is the weekday × month revenue heatmap. Revenue is
// indexed [weekday][month] following the label slices.
type SeasonalityMatrix struct {
	Weekdays []string    `json:"weekdays"`
	Months   []string    `json:"months"`
	Revenue  [][]float64 `json:"revenue"`
}

// CustomerMonthlyPoint is one month of a customer's trend.
type CustomerMonthlyPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// CustomerSummary is one row of the customer listing.
type CustomerSummary struct {
	CustomerID   string     `json:"customer_id"`
	CustomerName string     `json:"customer_name,omitempty"`
	Orders       int        `json:"orders"`
	Revenue      float64    `json:"revenue"`
	LastPurchase *time.Time `json:"last_purchase,omitempty"`
}

// CustomerDetail is the drill-down view for a single customer.
type CustomerDetail struct {
	CustomerID     string                 `json:"customer_id"`
	CustomerName   string                 `json:"customer_name,omitempty"`
	TotalSpend     float64                `json:"total_spend"`
	Orders         int                    `json:"orders"`
	AverageOrder   float64                `json:"average_order"`
	FirstPurchase  *time.Time             `json:"first_purchase,omitempty"`
	LastPurchase   *time.Time             `json:"last_purchase,omitempty"`
	OrdersPerMonth float64                `json:"orders_per_month"`
	Monthly        []CustomerMonthlyPoint `json:"monthly"`
	TopProducts    []TopProduct           `json:"top_products"`
	Seasonality    SeasonalityMatrix      `json:"seasonality"`
}
