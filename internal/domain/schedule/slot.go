package schedule

import "time"

type SlotStatus string

const (
	SlotFree   SlotStatus = "free"
	SlotBooked SlotStatus = "booked"
)

// Slot is a concrete bookable opportunity derived from a rule. Slots are
// computed per query and never persisted; identity is (DoctorID, Start).
type Slot struct {
	DoctorID    uint       `json:"doctor_id"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	DurationMin int        `json:"duration"`
	Status      SlotStatus `json:"status"`
}

func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

const DateKeyLayout = "2006-01-02"

// DateKey is the calendar-date key slots are grouped under. A date with no
// slots is absent from the grouped map entirely, so callers can test
// "has availability" via key presence.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}
