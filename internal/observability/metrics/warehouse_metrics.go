package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	FetchReasonDeadlineExceeded      = "deadline_exceeded"
	FetchReasonUndefinedTable        = "undefined_table"
	FetchReasonInsufficientPrivilege = "insufficient_privilege"
	FetchReasonSerializationFailure  = "serialization_failure"
	FetchReasonDB                    = "db"
	FetchReasonUnknown               = "unknown"
)

const (
	FetchStatusOK    = "ok"
	FetchStatusError = "error"
)

// WarehouseMetrics captures fetch health for the raw table queries.
type WarehouseMetrics struct {
	tableFetches  *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec
	rangeCache    *prometheus.CounterVec
}

var (
	warehouseMetricsOnce sync.Once
	warehouseMetrics     *WarehouseMetrics
)

// Warehouse returns the singleton warehouse metrics registry.
func Warehouse() *WarehouseMetrics {
	return WarehouseWithConfig(Config{})
}

// WarehouseWithConfig returns the singleton warehouse metrics registry using config labels.
func WarehouseWithConfig(cfg Config) *WarehouseMetrics {
	warehouseMetricsOnce.Do(func() {
		warehouseMetrics = newWarehouseMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return warehouseMetrics
}

// ResetWarehouseMetricsForTest resets the warehouse metrics singleton for tests.
func ResetWarehouseMetricsForTest() {
	warehouseMetricsOnce = sync.Once{}
	warehouseMetrics = nil
}

func newWarehouseMetrics(registerer prometheus.Registerer, cfg Config) *WarehouseMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "orderlens"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	tableFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "orderlens_warehouse_table_fetches_total",
		Help:        "Raw table fetches by table and status.",
		ConstLabels: constLabels,
	}, []string{"table", "status"})
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "orderlens_warehouse_fetch_duration_seconds",
		Help:        "Raw table query latency to keep report freshness in check.",
		Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		ConstLabels: constLabels,
	}, []string{"table"})
	fetchErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "orderlens_warehouse_fetch_errors_total",
		Help:        "Raw table fetch errors by low-cardinality reason.",
		ConstLabels: constLabels,
	}, []string{"table", "reason"})
	rangeCache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "orderlens_warehouse_range_cache_total",
		Help:        "Raw table cache lookups by outcome.",
		ConstLabels: constLabels,
	}, []string{"outcome"})

	registerer.MustRegister(
		tableFetches,
		fetchDuration,
		fetchErrors,
		rangeCache,
	)

	return &WarehouseMetrics{
		tableFetches:  tableFetches,
		fetchDuration: fetchDuration,
		fetchErrors:   fetchErrors,
		rangeCache:    rangeCache,
	}
}

// IncTableFetch increments the fetch counter for one table.
func (m *WarehouseMetrics) IncTableFetch(table, status string) {
	if m == nil || m.tableFetches == nil {
		return
	}
	m.tableFetches.WithLabelValues(table, status).Inc()
}

// ObserveFetchDuration records per-table query latency in seconds.
func (m *WarehouseMetrics) ObserveFetchDuration(table string, duration time.Duration) {
	if m == nil || m.fetchDuration == nil {
		return
	}
	m.fetchDuration.WithLabelValues(table).Observe(duration.Seconds())
}

// IncFetchError increments the fetch error counter with classification.
func (m *WarehouseMetrics) IncFetchError(table string, err error) {
	if m == nil || err == nil || m.fetchErrors == nil {
		return
	}
	m.fetchErrors.WithLabelValues(table, ClassifyFetchReason(err)).Inc()
}

// IncRangeCache increments cache lookup counters by outcome.
func (m *WarehouseMetrics) IncRangeCache(outcome string) {
	if m == nil || m.rangeCache == nil {
		return
	}
	m.rangeCache.WithLabelValues(outcome).Inc()
}

// ClassifyFetchReason maps fetch errors to low-cardinality reasons.
func ClassifyFetchReason(err error) string {
	if err == nil {
		return FetchReasonUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return FetchReasonDeadlineExceeded
	}
	if hasPGCode(err, "42P01") {
		return FetchReasonUndefinedTable
	}
	if hasPGCode(err, "42501") {
		return FetchReasonInsufficientPrivilege
	}
	if hasPGCode(err, "40001") {
		return FetchReasonSerializationFailure
	}
	if isDBError(err) {
		return FetchReasonDB
	}
	return FetchReasonUnknown
}

func hasPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func isDBError(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, gorm.ErrInvalidField) ||
		errors.Is(err, gorm.ErrInvalidData) ||
		errors.Is(err, gorm.ErrMissingWhereClause) ||
		errors.Is(err, gorm.ErrUnsupportedDriver) ||
		errors.Is(err, gorm.ErrRegistered) ||
		errors.Is(err, gorm.ErrInvalidValue) ||
		errors.Is(err, gorm.ErrNotImplemented) ||
		errors.Is(err, gorm.ErrDryRunModeUnsupported) ||
		errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}
