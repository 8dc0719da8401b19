package service

import (
	"context"
	"time"

	analyticsdomain "github.com/smallbiznis/orderlens/internal/analytics/domain"
	"github.com/smallbiznis/orderlens/internal/config"
	"github.com/smallbiznis/orderlens/internal/dataset"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	ReportCfg *config.ReportConfigHolder
	Log       *zap.Logger
	Report    reportdomain.Service
}

type Service struct {
	log       *zap.Logger
	reportCfg *config.ReportConfigHolder
	report    reportdomain.Service
}

func NewService(p Params) analyticsdomain.Service {
	return &Service{
		log:       p.Log.Named("analytics.service"),
		reportCfg: p.ReportCfg,
		report:    p.Report,
	}
}

// load fetches the filtered dataset and keeps only dated rows; every
// aggregate works on calendar activity, so undated rows contribute
// nothing.
func (s *Service) load(ctx context.Context, query reportdomain.Query) ([]dataset.Record, error) {
	records, err := s.report.Dataset(ctx, query)
	if err != nil {
		return nil, err
	}
	dated := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if rec.Date != nil {
			dated = append(dated, rec)
		}
	}
	return dated, nil
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

func maxDate(records []dataset.Record) (time.Time, bool) {
	var max time.Time
	found := false
	for _, rec := range records {
		if rec.Date == nil {
			continue
		}
		if !found || rec.Date.After(max) {
			max = *rec.Date
			found = true
		}
	}
	return max, found
}

// customerStat accumulates per-customer activity. Rows without a
// customer key stay out of customer analytics, the same way a
// name-keyed group-by drops unknowns.
type customerStat struct {
	id      string
	name    string
	first   time.Time
	last    time.Time
	orders  map[string]struct{}
	revenue float64
}

func collectCustomers(records []dataset.Record) map[string]*customerStat {
	stats := make(map[string]*customerStat)
	for _, rec := range records {
		if rec.CustomerID == "" || rec.Date == nil {
			continue
		}
		st := stats[rec.CustomerID]
		if st == nil {
			st = &customerStat{
				id:     rec.CustomerID,
				first:  *rec.Date,
				last:   *rec.Date,
				orders: make(map[string]struct{}),
			}
			stats[rec.CustomerID] = st
		}
		if st.name == "" && rec.CustomerName != nil {
			st.name = *rec.CustomerName
		}
		if rec.Date.Before(st.first) {
			st.first = *rec.Date
		}
		if rec.Date.After(st.last) {
			st.last = *rec.Date
		}
		if rec.OrderID != "" {
			st.orders[rec.OrderID] = struct{}{}
		}
		st.revenue += rec.Revenue
	}
	return stats
}
