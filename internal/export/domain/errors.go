package domain

import "errors"

// ErrTooManyRows rejects CSV exports larger than the configured cap so
// one download cannot pin the process on a multi-year window.
var ErrTooManyRows = errors.New("export: dataset exceeds the configured row cap")
