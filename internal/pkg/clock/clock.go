package clock

import "time"

// Clock is the time source threaded through services so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns the wall-clock backed Clock used in production wiring.
func System() Clock {
	return systemClock{}
}
