package service

import (
	"context"
	"time"

	"github.com/smallbiznis/orderlens/internal/cache"
	"github.com/smallbiznis/orderlens/internal/clock"
	"github.com/smallbiznis/orderlens/internal/cloudmetrics"
	"github.com/smallbiznis/orderlens/internal/config"
	obsmetrics "github.com/smallbiznis/orderlens/internal/observability/metrics"
	warehousedomain "github.com/smallbiznis/orderlens/internal/warehouse/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	rangeCacheName = "range"

	cacheHit  = "hit"
	cacheMiss = "miss"
)

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	Clock  clock.Clock
	Repo   warehousedomain.Repository
}

type Service struct {
	log    *zap.Logger
	clock  clock.Clock
	repo   warehousedomain.Repository
	ranges *cache.RangeCache[*warehousedomain.RawTables]
}

func NewService(p Params) (warehousedomain.Service, error) {
	ranges, err := cache.NewRangeCache[*warehousedomain.RawTables](p.Config.RawCacheSize)
	if err != nil {
		return nil, err
	}
	return &Service{
		log:    p.Log.Named("warehouse.service"),
		clock:  p.Clock,
		repo:   p.Repo,
		ranges: ranges,
	}, nil
}

// Fetch loads the nine raw tables for the normalized window. Results are
// memoized per window key, so repeated report requests over the same range
// never touch the warehouse again until the entry is evicted.
func (s *Service) Fetch(ctx context.Context, query warehousedomain.RangeQuery) (*warehousedomain.RawTables, error) {
	query = query.Normalize(s.clock.Now())
	key := query.Key()

	m := obsmetrics.Warehouse()
	if tables, ok := s.ranges.Get(key); ok {
		m.IncRangeCache(cacheHit)
		cloudmetrics.RecordCacheEvent(rangeCacheName, cacheHit)
		return tables, nil
	}
	m.IncRangeCache(cacheMiss)
	cloudmetrics.RecordCacheEvent(rangeCacheName, cacheMiss)

	tables := &warehousedomain.RawTables{
		Orders: fetchTable(ctx, s, "orders", func(ctx context.Context) ([]warehousedomain.OrderRow, error) {
			return s.repo.Orders(ctx, query.Start, query.End)
		}),
		OrderLines: fetchTable(ctx, s, "order_lines", func(ctx context.Context) ([]warehousedomain.OrderLineRow, error) {
			return s.repo.OrderLines(ctx, query.Start, query.End)
		}),
		Customers:       fetchTable(ctx, s, "customers", s.repo.Customers),
		Products:        fetchTable(ctx, s, "products", s.repo.Products),
		Regions:         fetchTable(ctx, s, "regions", s.repo.Regions),
		Shippers:        fetchTable(ctx, s, "shippers", s.repo.Shippers),
		ShippingMethods: fetchTable(ctx, s, "shipping_methods", s.repo.ShippingMethods),
		Suppliers:       fetchTable(ctx, s, "suppliers", s.repo.Suppliers),
		Packs: fetchTable(ctx, s, "packs", func(ctx context.Context) ([]warehousedomain.PackRow, error) {
			return s.repo.Packs(ctx, query.Start, query.End)
		}),
	}

	s.ranges.Set(key, tables)
	return tables, nil
}

// fetchTable runs one table query with metrics and error isolation. A
// failed query logs, counts, and degrades to an empty table so a partial
// warehouse outage still produces a report.
func fetchTable[T any](ctx context.Context, s *Service, table string, fetch func(context.Context) ([]T, error)) []T {
	m := obsmetrics.Warehouse()
	started := time.Now()
	rows, err := fetch(ctx)
	m.ObserveFetchDuration(table, time.Since(started))
	if err != nil {
		m.IncTableFetch(table, obsmetrics.FetchStatusError)
		m.IncFetchError(table, err)
		cloudmetrics.RecordFetchFailure(table)
		s.log.Error("raw table fetch failed",
			zap.String("table", table),
			zap.String("reason", obsmetrics.ClassifyFetchReason(err)),
			zap.Error(err),
		)
		return []T{}
	}
	m.IncTableFetch(table, obsmetrics.FetchStatusOK)
	if rows == nil {
		rows = []T{}
	}
	return rows
}
