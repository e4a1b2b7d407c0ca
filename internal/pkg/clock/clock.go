package clock

import "time"

// Clock supplies the current calendar date. It is injected wherever "today"
// matters so tests can pin a fixed date.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func System() Clock {
	return systemClock{}
}

// Fixed is a Clock pinned to a single date.
type Fixed struct {
	Date time.Time
}

func (f Fixed) Today() time.Time {
	return f.Date
}
