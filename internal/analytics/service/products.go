package service

import (
	"context"
	"sort"

	analyticsdomain "github.com/smallbiznis/orderlens/internal/analytics/domain"
	"github.com/smallbiznis/orderlens/internal/dataset"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
)

var (
	weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	monthLabels   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// TopProducts ranks products by revenue; the limit hot-reloads from the
// report config.
func (s *Service) TopProducts(ctx context.Context, query reportdomain.Query) ([]analyticsdomain.TopProduct, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}
	return topProductsFrom(records, s.reportCfg.Get().TopProductsLimit), nil
}

// Seasonality sums revenue into a weekday × month heatmap.
func (s *Service) Seasonality(ctx context.Context, query reportdomain.Query) (analyticsdomain.SeasonalityMatrix, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return analyticsdomain.SeasonalityMatrix{}, err
	}
	return seasonalityFrom(records), nil
}

func topProductsFrom(records []dataset.Record, limit int) []analyticsdomain.TopProduct {
	type productStat struct {
		id      string
		name    string
		revenue float64
	}
	stats := make(map[string]*productStat)
	for _, rec := range records {
		if rec.ProductID == "" {
			continue
		}
		st := stats[rec.ProductID]
		if st == nil {
			st = &productStat{id: rec.ProductID}
			stats[rec.ProductID] = st
		}
		if st.name == "" && rec.ProductName != nil {
			st.name = *rec.ProductName
		}
		st.revenue += rec.Revenue
	}

	ranked := make([]analyticsdomain.TopProduct, 0, len(stats))
	for _, st := range stats {
		ranked = append(ranked, analyticsdomain.TopProduct{
			ProductID:   st.id,
			ProductName: st.name,
			Revenue:     st.revenue,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func seasonalityFrom(records []dataset.Record) analyticsdomain.SeasonalityMatrix {
	revenue := make([][]float64, len(weekdayLabels))
	for i := range revenue {
		revenue[i] = make([]float64, len(monthLabels))
	}
	for _, rec := range records {
		if rec.Date == nil {
			continue
		}
		weekday := (int(rec.Date.Weekday()) + 6) % 7
		month := int(rec.Date.Month()) - 1
		revenue[weekday][month] += rec.Revenue
	}
	return analyticsdomain.SeasonalityMatrix{
		Weekdays: weekdayLabels,
		Months:   monthLabels,
		Revenue:  revenue,
	}
}
