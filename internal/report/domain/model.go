package domain

import (
	"time"

	"github.com/smallbiznis/orderlens/internal/dataset"
)

// Query selects the dataset slice a report runs on. Nil dates fall back
// to the configured default window; empty selections disable their
// predicate.
type Query struct {
	Start    *time.Time
	End      *time.Time
	Regions  []string
	Products []string
	Channel  string
}

func (q Query) Validate() error {
	if q.Start != nil && q.End != nil && q.Start.After(*q.End) {
		return ErrInvalidRange
	}
	switch q.Channel {
	case "", dataset.ChannelAll, dataset.ChannelRetail, dataset.ChannelWholesale:
		return nil
	default:
		return ErrInvalidChannel
	}
}

// Filter converts the query into the dataset-level predicate set.
func (q Query) Filter() dataset.Filter {
	return dataset.Filter{
		Start:    q.Start,
		End:      q.End,
		Regions:  q.Regions,
		Products: q.Products,
		Channel:  q.Channel,
	}
}

// FilterOptions feeds the report filter pickers.
type FilterOptions struct {
	Regions  []string   `json:"regions"`
	Products []string   `json:"products"`
	Channels []string   `json:"channels"`
	DateMin  *time.Time `json:"date_min,omitempty"`
	DateMax  *time.Time `json:"date_max,omitempty"`
}
