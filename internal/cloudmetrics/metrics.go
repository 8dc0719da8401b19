package cloudmetrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// CloudMetrics owns the accounting registry for a cloud-managed
// install. The registry is private so only accounting series reach the
// control plane; operational metrics stay on the local /metrics
// surface.
type CloudMetrics struct {
	registry *prometheus.Registry
	metrics  *metrics
	pusher   Pusher
	logger   *zap.Logger
	org      string
}

// New builds the accounting registry and installs its recorder. A nil
// registry allocates a private one.
func New(registry *prometheus.Registry, pusher Pusher, orgID, version string, logger *zap.Logger) *CloudMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := newMetrics(registry)
	c := &CloudMetrics{
		registry: registry,
		metrics:  m,
		pusher:   pusher,
		logger:   logger,
		org:      normalizeLabel(orgID),
	}
	m.buildInfo.WithLabelValues(c.org, normalizeLabel(version)).Set(1)
	setRecorder(newRecorder(m, c.org))
	return c
}

// Registry exposes the accounting registry for pushes and tests.
func (c *CloudMetrics) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Push ships the current accounting series to the configured exporter.
func (c *CloudMetrics) Push(ctx context.Context) error {
	if c == nil || c.pusher == nil {
		return nil
	}
	return c.pusher.Push(ctx, c.registry)
}

// SetMemoryUsage records the process memory footprint in bytes.
func (c *CloudMetrics) SetMemoryUsage(bytes uint64) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.memoryBytes.WithLabelValues(c.org).Set(float64(bytes))
}

// SetWarehouseOrders records the total number of orders in the
// warehouse, refreshed by the background push loop.
func (c *CloudMetrics) SetWarehouseOrders(count int64) {
	if c == nil || c.metrics == nil {
		return
	}
	if count < 0 {
		count = 0
	}
	c.metrics.warehouseOrders.WithLabelValues(c.org).Set(float64(count))
}

type metrics struct {
	buildInfo        *prometheus.GaugeVec
	datasetsPrepared *prometheus.CounterVec
	datasetRecords   *prometheus.GaugeVec
	fetchFailures    *prometheus.CounterVec
	exportsRendered  *prometheus.CounterVec
	cacheEvents      *prometheus.CounterVec
	warehouseOrders  *prometheus.GaugeVec
	memoryBytes      *prometheus.GaugeVec
}

func newMetrics(registry *prometheus.Registry) *metrics {
	m := &metrics{
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orderlens_cloud_build_info",
			Help: "Build metadata for the reporting install.",
		}, []string{"org", "version"}),
		datasetsPrepared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderlens_cloud_datasets_prepared_total",
			Help: "Order-line datasets prepared by organization.",
		}, []string{"org"}),
		datasetRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orderlens_cloud_dataset_records",
			Help: "Rows in the most recently prepared dataset.",
		}, []string{"org"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderlens_cloud_fetch_failures_total",
			Help: "Warehouse table fetch failures by organization and table.",
		}, []string{"org", "table"}),
		exportsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderlens_cloud_exports_rendered_total",
			Help: "Report exports rendered by organization and format.",
		}, []string{"org", "format"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderlens_cloud_cache_events_total",
			Help: "Report cache lookups by organization, cache and outcome.",
		}, []string{"org", "cache", "outcome"}),
		warehouseOrders: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orderlens_cloud_warehouse_orders",
			Help: "Orders currently stored in the warehouse.",
		}, []string{"org"}),
		memoryBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orderlens_cloud_memory_bytes",
			Help: "Process memory reserved from the OS.",
		}, []string{"org"}),
	}

	registry.MustRegister(
		m.buildInfo,
		m.datasetsPrepared,
		m.datasetRecords,
		m.fetchFailures,
		m.exportsRendered,
		m.cacheEvents,
		m.warehouseOrders,
		m.memoryBytes,
	)
	return m
}
