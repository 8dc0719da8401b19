package cloudmetrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderRoutesThroughAccountingRegistry(t *testing.T) {
	c := New(prometheus.NewRegistry(), nil, "org-1", "0.1.0", nil)

	RecordExportRendered("csv")
	RecordExportRendered("csv")
	RecordFetchFailure("orders")
	RecordCacheEvent("dataset", "hit")

	if got := testutil.ToFloat64(c.metrics.exportsRendered.WithLabelValues("org-1", "csv")); got != 2 {
		t.Fatalf("expected 2 csv exports, got %v", got)
	}
	if got := testutil.ToFloat64(c.metrics.fetchFailures.WithLabelValues("org-1", "orders")); got != 1 {
		t.Fatalf("expected 1 fetch failure, got %v", got)
	}
	if got := testutil.ToFloat64(c.metrics.cacheEvents.WithLabelValues("org-1", "dataset", "hit")); got != 1 {
		t.Fatalf("expected 1 cache hit, got %v", got)
	}
}

func TestRecordDatasetPreparedTracksLastSize(t *testing.T) {
	c := New(prometheus.NewRegistry(), nil, "org-1", "0.1.0", nil)

	RecordDatasetPrepared(10)
	RecordDatasetPrepared(4)

	if got := testutil.ToFloat64(c.metrics.datasetsPrepared.WithLabelValues("org-1")); got != 2 {
		t.Fatalf("expected 2 prepared datasets, got %v", got)
	}
	if got := testutil.ToFloat64(c.metrics.datasetRecords.WithLabelValues("org-1")); got != 4 {
		t.Fatalf("expected gauge to hold the last size 4, got %v", got)
	}
}

func TestRecorderNormalizesEmptyLabels(t *testing.T) {
	c := New(prometheus.NewRegistry(), nil, "  ", "0.1.0", nil)

	RecordFetchFailure("")

	if got := testutil.ToFloat64(c.metrics.fetchFailures.WithLabelValues("unknown", "unknown")); got != 1 {
		t.Fatalf("expected blank labels to normalize to unknown, got %v", got)
	}
}

func TestNilCloudMetricsIsSafe(t *testing.T) {
	var c *CloudMetrics

	if err := c.Push(context.Background()); err != nil {
		t.Fatalf("nil push should be a no-op, got %v", err)
	}
	c.SetMemoryUsage(1024)
	c.SetWarehouseOrders(10)
	if c.Registry() != nil {
		t.Fatal("nil metrics should expose a nil registry")
	}
}
