package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/smallbiznis/orderlens/internal/cache"
	"github.com/smallbiznis/orderlens/internal/clock"
	"github.com/smallbiznis/orderlens/internal/cloudmetrics"
	"github.com/smallbiznis/orderlens/internal/config"
	"github.com/smallbiznis/orderlens/internal/dataset"
	obsmetrics "github.com/smallbiznis/orderlens/internal/observability/metrics"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
	warehousedomain "github.com/smallbiznis/orderlens/internal/warehouse/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const datasetCacheName = "dataset"

type Params struct {
	fx.In

	Config    config.Config
	ReportCfg *config.ReportConfigHolder
	Log       *zap.Logger
	Clock     clock.Clock
	Warehouse warehousedomain.Service
	Metrics   *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	clock     clock.Clock
	warehouse warehousedomain.Service
	reportCfg *config.ReportConfigHolder
	metrics   *obsmetrics.Metrics
	datasets  *cache.RangeCache[[]dataset.Record]
}

func NewService(p Params) (reportdomain.Service, error) {
	datasets, err := cache.NewRangeCache[[]dataset.Record](p.Config.DatasetCacheSize)
	if err != nil {
		return nil, err
	}
	return &Service{
		log:       p.Log.Named("report.service"),
		clock:     p.Clock,
		warehouse: p.Warehouse,
		reportCfg: p.ReportCfg,
		metrics:   p.Metrics,
		datasets:  datasets,
	}, nil
}

// Dataset returns the prepared records for the query window with the
// query's predicates applied.
func (s *Service) Dataset(ctx context.Context, query reportdomain.Query) ([]dataset.Record, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	records, err := s.prepared(ctx, query)
	if err != nil {
		return nil, err
	}
	return dataset.Apply(records, query.Filter()), nil
}

// Options lists the selectable filter values over the default window.
func (s *Service) Options(ctx context.Context) (reportdomain.FilterOptions, error) {
	records, err := s.prepared(ctx, reportdomain.Query{})
	if err != nil {
		return reportdomain.FilterOptions{}, err
	}

	regionSet := map[string]struct{}{}
	productSet := map[string]struct{}{}
	var dateMin, dateMax *time.Time
	for i := range records {
		rec := &records[i]
		if rec.RegionName != nil && *rec.RegionName != "" {
			regionSet[*rec.RegionName] = struct{}{}
		}
		if rec.ProductName != nil && *rec.ProductName != "" {
			productSet[*rec.ProductName] = struct{}{}
		}
		if rec.Date != nil {
			if dateMin == nil || rec.Date.Before(*dateMin) {
				dateMin = rec.Date
			}
			if dateMax == nil || rec.Date.After(*dateMax) {
				dateMax = rec.Date
			}
		}
	}

	return reportdomain.FilterOptions{
		Regions:  withAllSentinel(regionSet),
		Products: withAllSentinel(productSet),
		Channels: []string{dataset.ChannelAll, dataset.ChannelRetail, dataset.ChannelWholesale},
		DateMin:  copyDate(dateMin),
		DateMax:  copyDate(dateMax),
	}, nil
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// prepared resolves the fetch window, then serves the prepared dataset
// from the per-range cache or builds it from a fresh fetch.
func (s *Service) prepared(ctx context.Context, query reportdomain.Query) ([]dataset.Record, error) {
	rangeQuery := s.fetchRange(query)
	normalized := rangeQuery.Normalize(s.clock.Now())
	key := normalized.Key()

	if records, ok := s.datasets.Get(key); ok {
		s.metrics.RecordCacheEvent(ctx, datasetCacheName, "hit")
		cloudmetrics.RecordCacheEvent(datasetCacheName, "hit")
		return records, nil
	}
	s.metrics.RecordCacheEvent(ctx, datasetCacheName, "miss")
	cloudmetrics.RecordCacheEvent(datasetCacheName, "miss")

	raw, err := s.warehouse.Fetch(ctx, normalized)
	if err != nil {
		return nil, err
	}

	records, err := dataset.Prepare(raw)
	if err != nil {
		s.metrics.RecordDatasetBuild(ctx, "error")
		s.log.Error("dataset preparation failed",
			zap.String("range", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("prepare dataset: %w", err)
	}
	s.metrics.RecordDatasetBuild(ctx, "ok")
	cloudmetrics.RecordDatasetPrepared(len(records))
	s.log.Info("dataset prepared",
		zap.String("range", key),
		zap.Int("records", len(records)),
	)

	s.datasets.Set(key, records)
	return records, nil
}

func (s *Service) fetchRange(query reportdomain.Query) warehousedomain.RangeQuery {
	rq := warehousedomain.RangeQuery{Start: s.reportCfg.Get().DefaultStart()}
	if query.Start != nil {
		rq.Start = *query.Start
	}
	if query.End != nil {
		rq.End = *query.End
	}
	return rq
}

func withAllSentinel(set map[string]struct{}) []string {
	values := make([]string, 0, len(set)+1)
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{dataset.FilterAll}, values...)
}
