package schedule

import (
	"sort"
	"time"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

// ======================================================
// Slot Generator
// ======================================================

// ExpandRules expands a doctor's rules into candidate slots over the
// closed date range [from, to], grouped by calendar date and sorted by
// start time within each date.
//
// A "date" rule applies only to its own date and, when present, overrides
// every "weekly" rule for that date. Weekly rules fill the remaining
// matching weekdays. Malformed rules are skipped. Trailing partial slots
// are dropped, never emitted short. Dates with no slots are absent from
// the result.
func ExpandRules(
	doctorID uint,
	rules []models.AvailabilityRule,
	from time.Time,
	to time.Time,
) map[string][]Slot {

	out := make(map[string][]Slot)

	first := midnight(from)
	last := midnight(to)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		slots := slotsForDay(doctorID, rules, day)
		if len(slots) == 0 {
			continue
		}

		sort.Slice(slots, func(i, j int) bool {
			return slots[i].Start.Before(slots[j].Start)
		})

		out[DateKey(day)] = slots
	}

	return out
}

func slotsForDay(
	doctorID uint,
	rules []models.AvailabilityRule,
	day time.Time,
) []Slot {

	key := DateKey(day)
	weekday := int(day.Weekday())

	var applicable []models.AvailabilityRule
	for _, r := range rules {
		if r.Kind == RuleKindDate && r.Date == key {
			applicable = append(applicable, r)
		}
	}

	// explicit override beats recurring default
	if len(applicable) == 0 {
		for _, r := range rules {
			if r.Kind == RuleKindWeekly && r.DayOfWeek == weekday {
				applicable = append(applicable, r)
			}
		}
	}

	var slots []Slot
	for _, r := range applicable {
		slots = append(slots, walkWindow(doctorID, r, day)...)
	}

	return slots
}

// walkWindow steps the rule's window in DurationMin increments, emitting
// one slot per step whose end does not exceed the window end.
func walkWindow(doctorID uint, r models.AvailabilityRule, day time.Time) []Slot {
	window, ok := ruleWindow(r, day)
	if !ok {
		return nil
	}

	step := time.Duration(r.DurationMin) * time.Minute

	var slots []Slot
	for cur := window.Start; !cur.Add(step).After(window.End); cur = cur.Add(step) {
		slots = append(slots, Slot{
			DoctorID:    doctorID,
			Start:       cur,
			End:         cur.Add(step),
			DurationMin: r.DurationMin,
			Status:      SlotFree,
		})
	}

	return slots
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
