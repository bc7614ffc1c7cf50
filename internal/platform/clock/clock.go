package clock

import "time"

// Clock abstracts time so request timing is deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Since is time.Since against c.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
