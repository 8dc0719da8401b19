package cloudmetrics

import (
	"context"
	"runtime"
	"time"

	"github.com/smallbiznis/orderlens/internal/config"
	"github.com/smallbiznis/orderlens/pkg/telemetry/correlation"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pushInterval = 30 * time.Minute

var Module = fx.Module("cloud.metrics",
	fx.Provide(NewPusher),
	fx.Provide(func(cfg config.Config, pusher Pusher, logger *zap.Logger) *CloudMetrics {
		if !cfg.IsCloud() || !cfg.Cloud.Metrics.Enabled {
			return nil
		}
		return New(nil, pusher, cfg.Cloud.OrganizationID, cfg.AppVersion, logger)
	}),
	fx.Invoke(func(lc fx.Lifecycle, c *CloudMetrics, logger *zap.Logger, db *gorm.DB) {
		if c == nil {
			return
		}

		if logger == nil {
			logger = zap.NewNop()
		}

		ctx, cancel := context.WithCancel(context.Background())
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				logger.Info("starting cloud metrics background worker")
				go func() {
					ticker := time.NewTicker(pushInterval)
					defer ticker.Stop()

					// Initial push
					pushCycle(ctx, c, db, logger, "initial")

					for {
						select {
						case <-ticker.C:
							pushCycle(ctx, c, db, logger, "periodic")
						case <-ctx.Done():
							logger.Info("stopping cloud metrics background worker")
							return
						}
					}
				}()
				return nil
			},
			OnStop: func(context.Context) error {
				cancel()
				return nil
			},
		})
	}),
)

// pushCycle gathers one accounting snapshot and ships it. Each cycle
// carries its own correlation ID so a failed batch can be chased from
// service logs into the control plane.
func pushCycle(ctx context.Context, c *CloudMetrics, db *gorm.DB, logger *zap.Logger, kind string) {
	ctx, _ = correlation.Ensure(ctx)

	updateSystemMetrics(c)
	updateOrderCount(ctx, c, db)
	if err := c.Push(ctx); err != nil {
		logger.Error("cloud metrics push failed",
			zap.String("cycle", kind),
			zap.Error(err),
			correlation.Field(ctx),
		)
	}
}

func updateSystemMetrics(c *CloudMetrics) {
	if c == nil {
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	c.SetMemoryUsage(m.Sys)
}

func updateOrderCount(ctx context.Context, c *CloudMetrics, db *gorm.DB) {
	if c == nil || db == nil {
		return
	}
	var count int64
	if err := db.WithContext(ctx).Table("orders").Count(&count).Error; err != nil {
		return
	}
	c.SetWarehouseOrders(count)
}
