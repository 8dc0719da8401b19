package service

import (
	"context"
	"fmt"
	"sort"

	analyticsdomain "github.com/smallbiznis/orderlens/internal/analytics/domain"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
)

// RFM scores every customer on recency, frequency and monetary value
// with rank-based quartile cuts.
func (s *Service) RFM(ctx context.Context, query reportdomain.Query) ([]analyticsdomain.RFMRow, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}

	stats := collectCustomers(records)
	if len(stats) == 0 {
		return []analyticsdomain.RFMRow{}, nil
	}
	now, _ := maxDate(records)

	rows := make([]analyticsdomain.RFMRow, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, analyticsdomain.RFMRow{
			CustomerID:   st.id,
			CustomerName: st.name,
			RecencyDays:  wholeDays(st.last, now),
			Frequency:    len(st.orders),
			Monetary:     st.revenue,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerID < rows[j].CustomerID })

	n := len(rows)
	assignQuartiles(n,
		func(i int) float64 { return float64(rows[i].RecencyDays) },
		func(i int) string { return rows[i].CustomerID },
		func(i, bucket int) { rows[i].R = 4 - bucket },
	)
	assignQuartiles(n,
		func(i int) float64 { return float64(rows[i].Frequency) },
		func(i int) string { return rows[i].CustomerID },
		func(i, bucket int) { rows[i].F = bucket + 1 },
	)
	assignQuartiles(n,
		func(i int) float64 { return rows[i].Monetary },
		func(i int) string { return rows[i].CustomerID },
		func(i, bucket int) { rows[i].M = bucket + 1 },
	)
	for i := range rows {
		rows[i].Segment = fmt.Sprintf("%d%d%d", rows[i].R, rows[i].F, rows[i].M)
	}
	return rows, nil
}

// assignQuartiles cuts n items into four equal-population buckets by
// rank. Ties break on the key so scoring is deterministic.
func assignQuartiles(n int, value func(int) float64, key func(int) string, assign func(i, bucket int)) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := value(idx[a]), value(idx[b])
		if va != vb {
			return va < vb
		}
		return key(idx[a]) < key(idx[b])
	})
	for rank, i := range idx {
		bucket := rank * 4 / n
		if bucket > 3 {
			bucket = 3
		}
		assign(i, bucket)
	}
}
