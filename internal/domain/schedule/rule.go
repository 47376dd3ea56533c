package schedule

import (
	"time"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

// ===============================
// Rule kinds + validation
// ===============================

const (
	RuleKindDate   = "date"
	RuleKindWeekly = "weekly"
)

const clockLayout = "15:04"

// ValidateRule checks a rule before it is stored. For date rules the
// DayOfWeek is derived from the date, never taken from the caller.
func ValidateRule(r *models.AvailabilityRule) error {
	start, err := time.Parse(clockLayout, r.StartTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_input")
	}

	end, err := time.Parse(clockLayout, r.EndTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_input")
	}

	if !start.Before(end) {
		return httperr.ErrBusiness("invalid_input")
	}

	if r.DurationMin <= 0 {
		return httperr.ErrBusiness("invalid_input")
	}

	switch r.Kind {
	case RuleKindDate:
		date, err := time.Parse(DateKeyLayout, r.Date)
		if err != nil {
			return httperr.ErrBusiness("invalid_input")
		}
		r.DayOfWeek = int(date.Weekday())

	case RuleKindWeekly:
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			return httperr.ErrBusiness("invalid_input")
		}
		r.Date = ""

	default:
		return httperr.ErrBusiness("invalid_input")
	}

	return nil
}

// ruleWindow merges a rule's wall-clock window onto a concrete day.
// ok=false means the rule is malformed and must be skipped, never
// surfaced as a broken slot.
func ruleWindow(r models.AvailabilityRule, day time.Time) (Interval, bool) {
	start, err := time.Parse(clockLayout, r.StartTime)
	if err != nil {
		return Interval{}, false
	}

	end, err := time.Parse(clockLayout, r.EndTime)
	if err != nil {
		return Interval{}, false
	}

	if !start.Before(end) || r.DurationMin <= 0 {
		return Interval{}, false
	}

	onDay := func(t time.Time) time.Time {
		return time.Date(
			day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0,
			day.Location(),
		)
	}

	return Interval{Start: onDay(start), End: onDay(end)}, true
}
