package schedule

import "time"

// ===============================
// Interval Model
// ===============================

// Interval is a half-open time interval [Start, End). All conflict
// decisions in the scheduler go through Overlaps; nothing else compares
// appointment timestamps directly.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two half-open intervals share any instant.
// An interval ending exactly when another begins does not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}
