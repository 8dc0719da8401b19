package dataset

import "errors"

var ErrNilRawTables = errors.New("dataset: nil raw tables")
