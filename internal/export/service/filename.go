package service

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/orderlens/internal/dataset"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
)

// fileName slugs the filter description and appends a download ID so
// repeated exports of the same window never collide.
func (s *Service) fileName(ext string, query reportdomain.Query) string {
	parts := []string{"orders"}
	if query.Start != nil {
		parts = append(parts, query.Start.Format("2006-01-02"))
	}
	if query.End != nil {
		parts = append(parts, query.End.Format("2006-01-02"))
	}
	if query.Channel != "" && query.Channel != dataset.ChannelAll {
		parts = append(parts, query.Channel)
	}
	if len(query.Regions) == 1 && query.Regions[0] != dataset.FilterAll {
		parts = append(parts, query.Regions[0])
	}
	if len(query.Products) == 1 && query.Products[0] != dataset.FilterAll {
		parts = append(parts, query.Products[0])
	}
	return fmt.Sprintf("%s-%s.%s", slug.Make(strings.Join(parts, " ")), s.genID.Generate(), ext)
}
