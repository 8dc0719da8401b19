package service

import (
	"context"
	"sort"

	analyticsdomain "github.com/smallbiznis/orderlens/internal/analytics/domain"
	"github.com/smallbiznis/orderlens/internal/dataset"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
	"github.com/smallbiznis/orderlens/pkg/db/pagination"
)

// Summary computes the KPI cards over the filtered dataset.
func (s *Service) Summary(ctx context.Context, query reportdomain.Query) (analyticsdomain.Summary, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return analyticsdomain.Summary{}, err
	}

	customers := make(map[string]struct{})
	orders := make(map[string]struct{})
	revenue := 0.0
	for _, rec := range records {
		if rec.CustomerID != "" {
			customers[rec.CustomerID] = struct{}{}
		}
		if rec.OrderID != "" {
			orders[rec.OrderID] = struct{}{}
		}
		revenue += rec.Revenue
	}

	summary := analyticsdomain.Summary{
		Customers: len(customers),
		Orders:    len(orders),
		Revenue:   revenue,
	}
	if summary.Orders > 0 {
		summary.AverageOrderValue = revenue / float64(summary.Orders)
	}
	return summary, nil
}

// CLV ranks customers by lifetime revenue.
func (s *Service) CLV(ctx context.Context, query reportdomain.Query) ([]analyticsdomain.CLVRow, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}

	stats := collectCustomers(records)
	rows := make([]analyticsdomain.CLVRow, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, analyticsdomain.CLVRow{
			CustomerID:   st.id,
			CustomerName: st.name,
			CLV:          st.revenue,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CLV != rows[j].CLV {
			return rows[i].CLV > rows[j].CLV
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
	return rows, nil
}

// Intervals pools the day gaps between each customer's consecutive
// distinct order events. Customers with fewer than two orders
// contribute nothing; two orders on the same day contribute a zero.
func (s *Service) Intervals(ctx context.Context, query reportdomain.Query) (analyticsdomain.IntervalsResult, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return analyticsdomain.IntervalsResult{}, err
	}

	type event struct {
		orderID string
		date    int64
	}
	seen := make(map[string]map[event]struct{})
	for _, rec := range records {
		if rec.CustomerID == "" || rec.OrderID == "" {
			continue
		}
		set := seen[rec.CustomerID]
		if set == nil {
			set = make(map[event]struct{})
			seen[rec.CustomerID] = set
		}
		set[event{orderID: rec.OrderID, date: rec.Date.Unix()}] = struct{}{}
	}

	customers := make([]string, 0, len(seen))
	for id := range seen {
		customers = append(customers, id)
	}
	sort.Strings(customers)

	gaps := []int{}
	for _, id := range customers {
		dates := make([]int64, 0, len(seen[id]))
		for ev := range seen[id] {
			dates = append(dates, ev.date)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
		for i := 1; i < len(dates); i++ {
			gaps = append(gaps, int((dates[i]-dates[i-1])/86400))
		}
	}

	result := analyticsdomain.IntervalsResult{
		Count:    len(gaps),
		GapsDays: gaps,
	}
	if len(gaps) > 0 {
		total := 0
		for _, g := range gaps {
			total += g
		}
		result.MeanDays = float64(total) / float64(len(gaps))

		sorted := make([]int, len(gaps))
		copy(sorted, gaps)
		sort.Ints(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			result.MedianDays = float64(sorted[mid])
		} else {
			result.MedianDays = float64(sorted[mid-1]+sorted[mid]) / 2
		}
	}
	return result, nil
}

// Customers lists per-customer rollups with cursor pagination, ordered
// by customer key.
func (s *Service) Customers(ctx context.Context, query reportdomain.Query, page pagination.Pagination) ([]analyticsdomain.CustomerSummary, *pagination.PageInfo, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	stats := collectCustomers(records)
	summaries := make([]analyticsdomain.CustomerSummary, 0, len(stats))
	for _, st := range stats {
		last := st.last
		summaries = append(summaries, analyticsdomain.CustomerSummary{
			CustomerID:   st.id,
			CustomerName: st.name,
			Orders:       len(st.orders),
			Revenue:      st.revenue,
			LastPurchase: &last,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].CustomerID < summaries[j].CustomerID })

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, nil, analyticsdomain.ErrInvalidPageToken
		}
		from := sort.Search(len(summaries), func(i int) bool { return summaries[i].CustomerID > cursor.ID })
		summaries = summaries[from:]
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = 25
	}
	if len(summaries) > limit+1 {
		summaries = summaries[:limit+1]
	}

	out, info := pagination.BuildCursorPage(summaries, limit, func(c analyticsdomain.CustomerSummary) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: c.CustomerID})
		return token
	})
	return out, info, nil
}

// Customer builds the drill-down view for one customer.
func (s *Service) Customer(ctx context.Context, query reportdomain.Query, customerID string) (analyticsdomain.CustomerDetail, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return analyticsdomain.CustomerDetail{}, err
	}

	key := dataset.NormalizeKey(customerID)
	own := make([]dataset.Record, 0, 16)
	for _, rec := range records {
		if rec.CustomerID == key && key != "" {
			own = append(own, rec)
		}
	}
	if len(own) == 0 {
		return analyticsdomain.CustomerDetail{}, analyticsdomain.ErrCustomerNotFound
	}

	stats := collectCustomers(own)
	st := stats[key]

	detail := analyticsdomain.CustomerDetail{
		CustomerID:   st.id,
		CustomerName: st.name,
		TotalSpend:   st.revenue,
		Orders:       len(st.orders),
	}
	if detail.Orders > 0 {
		detail.AverageOrder = st.revenue / float64(detail.Orders)
	}
	first, last := st.first, st.last
	detail.FirstPurchase = &first
	detail.LastPurchase = &last

	// orders per month over the active span, floored at one day
	span := wholeDays(first, last)
	if span < 1 {
		span = 1
	}
	detail.OrdersPerMonth = float64(detail.Orders) / (float64(span) / 30)

	type monthAgg struct {
		revenue float64
		orders  map[string]struct{}
	}
	byMonth := make(map[string]*monthAgg)
	for _, rec := range own {
		month := monthKey(*rec.Date)
		agg := byMonth[month]
		if agg == nil {
			agg = &monthAgg{orders: make(map[string]struct{})}
			byMonth[month] = agg
		}
		agg.revenue += rec.Revenue
		if rec.OrderID != "" {
			agg.orders[rec.OrderID] = struct{}{}
		}
	}
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	detail.Monthly = make([]analyticsdomain.CustomerMonthlyPoint, 0, len(months))
	for _, month := range months {
		agg := byMonth[month]
		detail.Monthly = append(detail.Monthly, analyticsdomain.CustomerMonthlyPoint{
			Month:   month,
			Revenue: agg.revenue,
			Orders:  len(agg.orders),
		})
	}

	detail.TopProducts = topProductsFrom(own, s.reportCfg.Get().TopProductsLimit)
	detail.Seasonality = seasonalityFrom(own)
	return detail, nil
}
