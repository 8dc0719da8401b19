package server

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/orderlens/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/orderlens/internal/observability/metrics"
	"github.com/smallbiznis/orderlens/internal/ratelimit"
	"go.uber.org/zap"
)

const rateLimitReasonExportBudget = "export-budget"

// ExportRateLimit throttles the download endpoints per client IP. A
// limiter failure rejects the request: exports are the one surface
// where unmetered traffic can pin the process, so the check fails
// closed.
func (s *Server) ExportRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.exportLimiter == nil || !s.exportLimiter.Enabled() {
			c.Next()
			return
		}

		endpoint := normalizeRateLimitEndpoint(c)
		ctx := c.Request.Context()

		result, err := s.exportLimiter.Allow(ctx, endpoint, c.ClientIP())
		if err != nil {
			logger.FromContext(ctx).Warn("export rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !result.Allowed {
			denyExportRateLimit(c, endpoint, result, s.obsMetrics)
			return
		}

		recordRateLimitAllowed(ctx, endpoint, s.obsMetrics)
		c.Next()
	}
}

func denyExportRateLimit(c *gin.Context, endpoint string, result *ratelimit.Result, metrics *obsmetrics.Metrics) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)
	log.Warn("export rate limit exceeded",
		zap.String("reason", rateLimitReasonExportBudget),
		zap.String("endpoint", endpoint),
	)
	recordRateLimitDenied(ctx, endpoint, rateLimitReasonExportBudget, metrics)

	c.Header("Retry-After", retryAfterSeconds(result.RetryAfter))
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-Rate-Limited-Reason", rateLimitReasonExportBudget)
	AbortWithError(c, ErrRateLimited)
}

func retryAfterSeconds(wait time.Duration) string {
	if wait <= 0 {
		return "1"
	}
	return strconv.Itoa(int(math.Ceil(wait.Seconds())))
}

func recordRateLimitAllowed(ctx context.Context, endpoint string, metrics *obsmetrics.Metrics) {
	if metrics == nil {
		return
	}
	metrics.RecordRateLimitAllowed(ctx, endpoint)
}

func recordRateLimitDenied(ctx context.Context, endpoint, reason string, metrics *obsmetrics.Metrics) {
	if metrics == nil {
		return
	}
	metrics.RecordRateLimitDenied(ctx, endpoint, reason)
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	if c == nil {
		return "unknown"
	}
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}
