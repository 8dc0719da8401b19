package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	exportdomain "github.com/smallbiznis/orderlens/internal/export/domain"
	"github.com/smallbiznis/orderlens/internal/ratelimit"
)

func TestExportRateLimitDisabledPassesThrough(t *testing.T) {
	exportSvc := &fakeExportService{
		csv: exportdomain.Artifact{FileName: "orders.csv", ContentType: "text/csv", Data: []byte("a,b\n")},
	}
	srv := &Server{exportSvc: exportSvc, exportLimiter: nil}
	router := newReportRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/api/report/export", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 with limiter disabled, got %d", resp.Code)
	}
	if exportSvc.csvCalls != 1 {
		t.Fatalf("expected handler to run, got %d calls", exportSvc.csvCalls)
	}
}

func TestDenyExportRateLimitSetsRetryHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	resp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(resp)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/report/export", nil)

	result := &ratelimit.Result{
		Allowed:    false,
		Limit:      6,
		Remaining:  0,
		RetryAfter: 1500 * time.Millisecond,
	}
	denyExportRateLimit(c, "/api/report/export", result, nil)

	if got := resp.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("expected Retry-After rounded up to 2, got %q", got)
	}
	if got := resp.Header().Get("X-RateLimit-Limit"); got != "6" {
		t.Fatalf("expected limit header 6, got %q", got)
	}
	if got := resp.Header().Get("X-Rate-Limited-Reason"); got != rateLimitReasonExportBudget {
		t.Fatalf("unexpected reason header %q", got)
	}
	if !c.IsAborted() {
		t.Fatal("expected request to abort")
	}
	lastErr := c.Errors.Last()
	if lastErr == nil || lastErr.Err != ErrRateLimited {
		t.Fatalf("expected ErrRateLimited recorded, got %v", lastErr)
	}
}

func TestRetryAfterSecondsFloorsAtOne(t *testing.T) {
	cases := []struct {
		wait time.Duration
		want string
	}{
		{0, "1"},
		{-time.Second, "1"},
		{300 * time.Millisecond, "1"},
		{10 * time.Second, "10"},
	}
	for _, tc := range cases {
		if got := retryAfterSeconds(tc.wait); got != tc.want {
			t.Fatalf("retryAfterSeconds(%v) = %q, want %q", tc.wait, got, tc.want)
		}
	}
}

func TestNormalizeRateLimitEndpointFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)

	resp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(resp)
	c.Request = httptest.NewRequest(http.MethodGet, "/unrouted/path", nil)

	if got := normalizeRateLimitEndpoint(c); got != "/unrouted/path" {
		t.Fatalf("expected raw path fallback, got %q", got)
	}
	if got := normalizeRateLimitEndpoint(nil); got != "unknown" {
		t.Fatalf("expected unknown for nil context, got %q", got)
	}
}
