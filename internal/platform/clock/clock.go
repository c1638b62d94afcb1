package clock

import "time"

// Clock abstracts time so the timer and ledger stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Local returns the location used for day-boundary semantics.
func Local() *time.Location {
	return time.Local
}
