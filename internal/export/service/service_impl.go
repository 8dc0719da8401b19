package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	analyticsdomain "github.com/smallbiznis/orderlens/internal/analytics/domain"
	"github.com/smallbiznis/orderlens/internal/cloudmetrics"
	"github.com/smallbiznis/orderlens/internal/config"
	exportdomain "github.com/smallbiznis/orderlens/internal/export/domain"
	obsmetrics "github.com/smallbiznis/orderlens/internal/observability/metrics"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	ReportCfg *config.ReportConfigHolder
	Log       *zap.Logger
	GenID     *snowflake.Node
	Report    reportdomain.Service
	Analytics analyticsdomain.Service
	Metrics   *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	reportCfg *config.ReportConfigHolder
	log       *zap.Logger
	genID     *snowflake.Node
	report    reportdomain.Service
	analytics analyticsdomain.Service
	metrics   *obsmetrics.Metrics
}

func NewService(p Params) exportdomain.Service {
	return &Service{
		reportCfg: p.ReportCfg,
		log:       p.Log.Named("export.service"),
		genID:     p.GenID,
		report:    p.Report,
		analytics: p.Analytics,
		metrics:   p.Metrics,
	}
}

// CSV renders the filtered dataset as a flat delimited file.
func (s *Service) CSV(ctx context.Context, query reportdomain.Query) (exportdomain.Artifact, error) {
	records, err := s.report.Dataset(ctx, query)
	if err != nil {
		return exportdomain.Artifact{}, err
	}

	if max := s.reportCfg.Get().ExportMaxRows; max > 0 && len(records) > max {
		return exportdomain.Artifact{}, fmt.Errorf("%w: %d rows, cap %d", exportdomain.ErrTooManyRows, len(records), max)
	}

	data, err := writeCSV(records)
	if err != nil {
		return exportdomain.Artifact{}, fmt.Errorf("write csv: %w", err)
	}

	artifact := exportdomain.Artifact{
		FileName:    s.fileName("csv", query),
		ContentType: "text/csv",
		Data:        data,
	}
	s.metrics.RecordExport(ctx, "csv")
	cloudmetrics.RecordExportRendered("csv")
	s.log.Info("csv export rendered",
		zap.String("file", artifact.FileName),
		zap.Int("rows", len(records)),
	)
	return artifact, nil
}

// PDF renders the one-page summary: KPIs plus the product ranking.
func (s *Service) PDF(ctx context.Context, query reportdomain.Query) (exportdomain.Artifact, error) {
	summary, err := s.analytics.Summary(ctx, query)
	if err != nil {
		return exportdomain.Artifact{}, err
	}
	products, err := s.analytics.TopProducts(ctx, query)
	if err != nil {
		return exportdomain.Artifact{}, err
	}

	data, err := buildSummaryPDF(summaryReport{
		Period:   periodLabel(query),
		Summary:  summary,
		Products: products,
	})
	if err != nil {
		return exportdomain.Artifact{}, fmt.Errorf("render pdf: %w", err)
	}

	artifact := exportdomain.Artifact{
		FileName:    s.fileName("pdf", query),
		ContentType: "application/pdf",
		Data:        data,
	}
	s.metrics.RecordExport(ctx, "pdf")
	cloudmetrics.RecordExportRendered("pdf")
	s.log.Info("pdf export rendered", zap.String("file", artifact.FileName))
	return artifact, nil
}
