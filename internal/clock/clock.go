package clock

import "time"

// Clock abstracts the current time so services can be tested
// against a fixed now.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func New() Clock {
	return systemClock{}
}
