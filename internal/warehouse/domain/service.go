package domain

import "context"

// Service fetches the raw tables for a range, caching results per
// normalized window. A failed table query yields an empty table and an
// error log, never a failed fetch.
type Service interface {
	Fetch(ctx context.Context, query RangeQuery) (*RawTables, error)
}
