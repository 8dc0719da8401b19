package domain

import (
	"context"

	"github.com/smallbiznis/orderlens/internal/dataset"
)

// Service materializes filtered datasets for the report surfaces. The
// prepared (unfiltered) dataset is memoized per fetch window; filters
// run per request.
type Service interface {
	Dataset(ctx context.Context, query Query) ([]dataset.Record, error)
	Options(ctx context.Context) (FilterOptions, error)
}
