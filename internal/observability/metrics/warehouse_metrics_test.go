package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClassifyFetchReason(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "deadline",
			err:  context.DeadlineExceeded,
			want: FetchReasonDeadlineExceeded,
		},
		{
			name: "undefined_table",
			err:  &pgconn.PgError{Code: "42P01"},
			want: FetchReasonUndefinedTable,
		},
		{
			name: "insufficient_privilege",
			err:  &pgconn.PgError{Code: "42501"},
			want: FetchReasonInsufficientPrivilege,
		},
		{
			name: "serialization_failure",
			err:  &pgconn.PgError{Code: "40001"},
			want: FetchReasonSerializationFailure,
		},
		{
			name: "other_pg_error",
			err:  &pgconn.PgError{Code: "53300"},
			want: FetchReasonDB,
		},
		{
			name: "unknown",
			err:  errors.New("boom"),
			want: FetchReasonUnknown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyFetchReason(tc.err); got != tc.want {
				t.Fatalf("expected reason %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIncTableFetch(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newWarehouseMetrics(registry, Config{
		ServiceName: "orderlens",
		Environment: "test",
	})

	metrics.IncTableFetch("orders", FetchStatusOK)
	metrics.IncTableFetch("orders", FetchStatusOK)
	metrics.IncTableFetch("packs", FetchStatusError)

	got := testutil.ToFloat64(metrics.tableFetches.WithLabelValues("orders", FetchStatusOK))
	if got != 2 {
		t.Fatalf("expected fetch count 2, got %v", got)
	}
	got = testutil.ToFloat64(metrics.tableFetches.WithLabelValues("packs", FetchStatusError))
	if got != 1 {
		t.Fatalf("expected error fetch count 1, got %v", got)
	}
}

func TestIncFetchErrorClassifies(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newWarehouseMetrics(registry, Config{
		ServiceName: "orderlens",
		Environment: "test",
	})

	metrics.IncFetchError("orders", &pgconn.PgError{Code: "42P01"})

	got := testutil.ToFloat64(metrics.fetchErrors.WithLabelValues("orders", FetchReasonUndefinedTable))
	if got != 1 {
		t.Fatalf("expected classified error count 1, got %v", got)
	}
}
