package cloudmetrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/prometheus/prompb"
	"github.com/smallbiznis/orderlens/internal/config"
	"github.com/smallbiznis/orderlens/pkg/telemetry/correlation"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

func cloudConfig(exporter, endpoint string) config.Config {
	return config.Config{
		AppName:     "orderlens",
		Mode:        config.ModeCloud,
		Environment: "test",
		Cloud: config.CloudConfig{
			Metrics: config.CloudMetricsConfig{
				Enabled:  true,
				Exporter: exporter,
				Endpoint: endpoint,
			},
		},
	}
}

func TestNewPusherSelection(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "oss mode disabled",
			cfg:  config.Config{Mode: config.ModeOSS},
			want: "none",
		},
		{
			name: "cloud metrics off",
			cfg: config.Config{
				Mode:  config.ModeCloud,
				Cloud: config.CloudConfig{Metrics: config.CloudMetricsConfig{Enabled: false}},
			},
			want: "none",
		},
		{
			name: "missing exporter",
			cfg:  cloudConfig("", "http://push.example.com"),
			want: "none",
		},
		{
			name: "invalid remote write endpoint",
			cfg:  cloudConfig(exporterPrometheusRemoteWrite, "::bad::"),
			want: "none",
		},
		{
			name: "unsupported exporter",
			cfg:  cloudConfig("statsd", "http://push.example.com"),
			want: "none",
		},
		{
			name: "remote write",
			cfg:  cloudConfig(exporterPrometheusRemoteWrite, "http://push.example.com/api/v1/write"),
			want: "remote_write",
		},
		{
			name: "pushgateway",
			cfg:  cloudConfig(exporterPrometheusPushgateway, "http://gateway.example.com"),
			want: "pushgateway",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPusher(tc.cfg, nil)
			switch tc.want {
			case "none":
				if p != nil {
					t.Fatalf("expected no pusher, got %T", p)
				}
			case "remote_write":
				if _, ok := p.(*RemoteWritePusher); !ok {
					t.Fatalf("expected remote write pusher, got %T", p)
				}
			case "pushgateway":
				if _, ok := p.(*PushgatewayPusher); !ok {
					t.Fatalf("expected pushgateway pusher, got %T", p)
				}
			}
		})
	}
}

func TestRemoteWritePusherSendsSnappyProto(t *testing.T) {
	var (
		gotHeaders http.Header
		gotBody    []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	registry := prometheus.NewRegistry()
	served := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orderlens_cloud_reports_test_total",
		Help: "test counter",
	})
	registry.MustRegister(served)
	served.Add(3)

	p := NewRemoteWritePusher(srv.URL, "secret")
	ctx := correlation.WithID(context.Background(), "01TESTBATCH")
	if err := p.Push(ctx, registry); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	if got := gotHeaders.Get("Content-Encoding"); got != "snappy" {
		t.Fatalf("expected snappy encoding, got %q", got)
	}
	if got := gotHeaders.Get("Authorization"); got != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", got)
	}
	if got := gotHeaders.Get(correlation.HeaderName); got != "01TESTBATCH" {
		t.Fatalf("expected correlation header, got %q", got)
	}

	payload, err := snappy.Decode(nil, gotBody)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	var req prompb.WriteRequest
	if err := proto.Unmarshal(payload, protoadapt.MessageV2Of(&req)); err != nil {
		t.Fatalf("unmarshal write request: %v", err)
	}
	if len(req.Timeseries) != 1 {
		t.Fatalf("expected one series, got %d", len(req.Timeseries))
	}
	series := req.Timeseries[0]
	if series.Labels[0].Name != "__name__" || series.Labels[0].Value != "orderlens_cloud_reports_test_total" {
		t.Fatalf("unexpected series name labels: %+v", series.Labels)
	}
	if series.Samples[0].Value != 3 {
		t.Fatalf("expected sample value 3, got %v", series.Samples[0].Value)
	}
}

func TestRemoteWritePusherSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	registry := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	registry.MustRegister(c)
	c.Inc()

	p := NewRemoteWritePusher(srv.URL, "")
	err := p.Push(context.Background(), registry)
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected remote write status error, got %v", err)
	}
}

func TestPushgatewayPusherPushesGrouping(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	registry := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	registry.MustRegister(c)

	p := NewPushgatewayPusher(srv.URL, "orderlens", map[string]string{"environment": "test"})
	if err := p.Push(context.Background(), registry); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if gotPath != "/metrics/job/orderlens/environment/test" {
		t.Fatalf("unexpected pushgateway path %q", gotPath)
	}
}

func TestPushgatewayPusherValidates(t *testing.T) {
	registry := prometheus.NewRegistry()

	if err := NewPushgatewayPusher("", "orderlens", nil).Push(context.Background(), registry); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
	if err := NewPushgatewayPusher("http://gateway.example.com", "  ", nil).Push(context.Background(), registry); err == nil {
		t.Fatal("expected error for missing job")
	}
}

func TestBuildRemoteWriteSeriesSkipsNonScalarFamilies(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "scalar_total", Help: "test"})
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "latency_seconds", Help: "test"})
	registry.MustRegister(counter, histogram)
	counter.Add(2)
	histogram.Observe(0.2)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	series := buildRemoteWriteSeries(families, 123)
	if len(series) != 1 {
		t.Fatalf("expected histogram to be skipped, got %d series", len(series))
	}
	if series[0].Samples[0].Timestamp != 123 {
		t.Fatalf("expected timestamp 123, got %d", series[0].Samples[0].Timestamp)
	}
}
