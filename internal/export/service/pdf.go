package service

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	analyticsdomain "github.com/smallbiznis/orderlens/internal/analytics/domain"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
)

type summaryReport struct {
	Period   string
	Summary  analyticsdomain.Summary
	Products []analyticsdomain.TopProduct
}

func buildSummaryPDF(report summaryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Order Analytics Summary", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(10,
		text.NewCol(12, "Period: "+report.Period, props.Text{Size: 10}),
	)

	m.AddRow(10,
		text.NewCol(6, "Customers", props.Text{Size: 10}),
		text.NewCol(6, fmt.Sprintf("%d", report.Summary.Customers), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(6, "Orders", props.Text{Size: 10}),
		text.NewCol(6, fmt.Sprintf("%d", report.Summary.Orders), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(6, "Revenue", props.Text{Size: 10}),
		text.NewCol(6, fmt.Sprintf("%.2f", report.Summary.Revenue), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(6, "Average order value", props.Text{Size: 10}),
		text.NewCol(6, fmt.Sprintf("%.2f", report.Summary.AverageOrderValue), props.Text{Size: 10, Align: align.Right}),
	)

	m.AddRow(12,
		text.NewCol(12, "Top products", props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   4,
		}),
	)
	m.AddRow(8,
		text.NewCol(8, "Product", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Revenue", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, product := range report.Products {
		name := product.ProductName
		if name == "" {
			name = product.ProductID
		}
		m.AddRow(8,
			text.NewCol(8, name, props.Text{Size: 9}),
			text.NewCol(4, fmt.Sprintf("%.2f", product.Revenue), props.Text{Size: 9, Align: align.Right}),
		)
	}
	if len(report.Products) == 0 {
		m.AddRow(8,
			text.NewCol(8, "No product activity in this period", props.Text{Size: 9}),
			col.New(4),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func periodLabel(query reportdomain.Query) string {
	switch {
	case query.Start != nil && query.End != nil:
		return query.Start.Format("2006-01-02") + " to " + query.End.Format("2006-01-02")
	case query.Start != nil:
		return "from " + query.Start.Format("2006-01-02")
	case query.End != nil:
		return "until " + query.End.Format("2006-01-02")
	default:
		return "all activity"
	}
}
