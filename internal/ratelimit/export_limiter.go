package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/orderlens/internal/config"
)

const keyExport = "export:%s:%s"

// ExportLimiter throttles the download endpoints per client. A nil
// limiter (rate limiting disabled) admits everything.
type ExportLimiter struct {
	enabled bool

	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewExportLimiter(cfg config.Config) (*ExportLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.ExportPerMinute <= 0 || limitCfg.ExportBurstSize <= 0 {
		return nil, errors.New("export rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &ExportLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    float64(limitCfg.ExportPerMinute) / 60.0,
		burst:   int(limitCfg.ExportBurstSize),
	}, nil
}

func (l *ExportLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow admits one export for the client; CSV and PDF budgets are
// keyed apart so a burst of one format cannot starve the other.
func (l *ExportLimiter) Allow(ctx context.Context, endpoint, client string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyExport, strings.TrimSpace(endpoint), strings.TrimSpace(client))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}
