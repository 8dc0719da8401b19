package domain

import "errors"

var (
	ErrInvalidRange   = errors.New("report: start date after end date")
	ErrInvalidChannel = errors.New("report: unknown channel")
)
