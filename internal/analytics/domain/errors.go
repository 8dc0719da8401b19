package domain

import "errors"

var (
	ErrCustomerNotFound = errors.New("analytics: customer not found")
	ErrInvalidPageToken = errors.New("analytics: invalid page token")
)
