package dataset

import (
	"strings"
	"time"
)

// FilterAll anywhere in a selection set disables that predicate.
const FilterAll = "All"

const (
	ChannelAll       = "All"
	ChannelRetail    = "Retail"
	ChannelWholesale = "Wholesale"
)

// Filter narrows a prepared dataset. Zero-valued members disable their
// predicate, mirroring absent HTTP query parameters.
type Filter struct {
	Start    *time.Time
	End      *time.Time
	Regions  []string
	Products []string
	Channel  string
}

// Apply returns the records matching every active predicate, preserving
// input order. The input slice is never mutated. Date bounds are
// inclusive against Record.Date; rows without a Date only drop out when
// a date bound is active. Region and product predicates match on the
// joined display names, so rows whose lookup missed cannot match.
func Apply(records []Record, f Filter) []Record {
	regions, filterRegions := selectionSet(f.Regions)
	products, filterProducts := selectionSet(f.Products)
	dateBounded := f.Start != nil || f.End != nil

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if dateBounded {
			if rec.Date == nil {
				continue
			}
			if f.Start != nil && rec.Date.Before(*f.Start) {
				continue
			}
			if f.End != nil && rec.Date.After(*f.End) {
				continue
			}
		}
		if filterRegions && !matchesName(rec.RegionName, regions) {
			continue
		}
		if filterProducts && !matchesName(rec.ProductName, products) {
			continue
		}
		if !matchesChannel(rec.IsRetail, f.Channel) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func selectionSet(values []string) (map[string]struct{}, bool) {
	if len(values) == 0 {
		return nil, false
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if v == FilterAll {
			return nil, false
		}
		set[v] = struct{}{}
	}
	if len(set) == 0 {
		return nil, false
	}
	return set, true
}

func matchesName(name *string, set map[string]struct{}) bool {
	if name == nil {
		return false
	}
	_, ok := set[*name]
	return ok
}

func matchesChannel(isRetail *bool, channel string) bool {
	switch channel {
	case ChannelRetail:
		return isRetail != nil && *isRetail
	case ChannelWholesale:
		return isRetail != nil && !*isRetail
	default:
		// ChannelAll, empty, or unrecognized values leave the predicate
		// off; the HTTP layer validates channel inputs.
		return true
	}
}
