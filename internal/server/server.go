package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/orderlens/internal/analytics"
	analyticsdomain "github.com/smallbiznis/orderlens/internal/analytics/domain"
	"github.com/smallbiznis/orderlens/internal/cloudmetrics"
	"github.com/smallbiznis/orderlens/internal/config"
	"github.com/smallbiznis/orderlens/internal/export"
	exportdomain "github.com/smallbiznis/orderlens/internal/export/domain"
	"github.com/smallbiznis/orderlens/internal/observability"
	obsmiddleware "github.com/smallbiznis/orderlens/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/orderlens/internal/observability/metrics"
	obstracing "github.com/smallbiznis/orderlens/internal/observability/tracing"
	"github.com/smallbiznis/orderlens/internal/ratelimit"
	"github.com/smallbiznis/orderlens/internal/report"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
	"github.com/smallbiznis/orderlens/internal/warehouse"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	cloudmetrics.Module,
	fx.Provide(registerGin),
	warehouse.Module,
	report.Module,
	analytics.Module,
	export.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	reportSvc     reportdomain.Service
	analyticsSvc  analyticsdomain.Service
	exportSvc     exportdomain.Service
	exportLimiter *ratelimit.ExportLimiter
	obsMetrics    *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	ReportSvc     reportdomain.Service
	AnalyticsSvc  analyticsdomain.Service
	ExportSvc     exportdomain.Service
	ExportLimiter *ratelimit.ExportLimiter `optional:"true"`
	ObsMetrics    *obsmetrics.Metrics      `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		reportSvc:     p.ReportSvc,
		analyticsSvc:  p.AnalyticsSvc,
		exportSvc:     p.ExportSvc,
		exportLimiter: p.ExportLimiter,
		obsMetrics:    p.ObsMetrics,
	}

	svc.registerReportRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerReportRoutes() {
	api := s.engine.Group("/api/report")

	api.GET("/options", s.ReportOptions)
	api.GET("/summary", s.Summary)
	api.GET("/rfm", s.RFM)
	api.GET("/cohorts", s.Cohorts)
	api.GET("/churn", s.Churn)
	api.GET("/clv", s.CLV)
	api.GET("/intervals", s.Intervals)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/monthly", s.MonthlyCustomers)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.GET("/products/top", s.TopProducts)
	api.GET("/seasonality", s.Seasonality)

	api.GET("/export", s.ExportRateLimit(), s.ExportCSV)
	api.GET("/export/pdf", s.ExportRateLimit(), s.ExportPDF)
}
