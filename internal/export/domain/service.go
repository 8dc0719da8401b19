package domain

import (
	"context"

	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
)

type Service interface {
	CSV(ctx context.Context, query reportdomain.Query) (Artifact, error)
	PDF(ctx context.Context, query reportdomain.Query) (Artifact, error)
}
