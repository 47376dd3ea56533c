package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateRule(date, start, end string, duration int) models.AvailabilityRule {
	return models.AvailabilityRule{
		Kind:        RuleKindDate,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		DurationMin: duration,
	}
}

func weeklyRule(dow int, start, end string, duration int) models.AvailabilityRule {
	return models.AvailabilityRule{
		Kind:        RuleKindWeekly,
		DayOfWeek:   dow,
		StartTime:   start,
		EndTime:     end,
		DurationMin: duration,
	}
}

func TestExpandRulesDateRule(t *testing.T) {
	rules := []models.AvailabilityRule{dateRule("2024-06-10", "09:00", "10:00", 30)}

	out := ExpandRules(1, rules, day(2024, 6, 10), day(2024, 6, 10))

	require.Len(t, out, 1)
	slots := out["2024-06-10"]
	require.Len(t, slots, 2)

	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(9, 30), slots[0].End)
	assert.Equal(t, at(9, 30), slots[1].Start)
	assert.Equal(t, at(10, 0), slots[1].End)

	for _, s := range slots {
		assert.Equal(t, uint(1), s.DoctorID)
		assert.Equal(t, 30, s.DurationMin)
		assert.Equal(t, SlotFree, s.Status)
	}
}

func TestExpandRulesDropsTrailingPartialSlot(t *testing.T) {
	// 105 minute window, 30 minute slots: exactly floor(105/30) = 3 slots
	rules := []models.AvailabilityRule{dateRule("2024-06-10", "09:00", "10:45", 30)}

	out := ExpandRules(1, rules, day(2024, 6, 10), day(2024, 6, 10))

	slots := out["2024-06-10"]
	require.Len(t, slots, 3)
	assert.Equal(t, at(10, 30), slots[2].End, "no slot may end past the window")

	for _, s := range slots {
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
	}
}

func TestExpandRulesSlotsContiguousAndOrdered(t *testing.T) {
	rules := []models.AvailabilityRule{dateRule("2024-06-10", "08:00", "12:00", 20)}

	out := ExpandRules(1, rules, day(2024, 6, 10), day(2024, 6, 10))

	slots := out["2024-06-10"]
	require.Len(t, slots, 12)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
		assert.Equal(t, slots[i-1].End, slots[i].Start, "same-rule slots are contiguous")
	}
}

func TestExpandRulesWeeklyAppliesToMatchingWeekdays(t *testing.T) {
	// 2024-06-10 is a Monday
	rules := []models.AvailabilityRule{weeklyRule(1, "09:00", "10:00", 30)}

	out := ExpandRules(1, rules, day(2024, 6, 10), day(2024, 6, 23))

	require.Len(t, out, 2)
	assert.Contains(t, out, "2024-06-10")
	assert.Contains(t, out, "2024-06-17")
}

func TestExpandRulesDateOverridesWeekly(t *testing.T) {
	rules := []models.AvailabilityRule{
		weeklyRule(1, "08:00", "12:00", 30),
		dateRule("2024-06-10", "09:00", "10:00", 30),
	}

	out := ExpandRules(1, rules, day(2024, 6, 10), day(2024, 6, 17))

	// Monday the 10th uses only the date rule's window
	slots := out["2024-06-10"]
	require.Len(t, slots, 2)
	assert.Equal(t, at(9, 0), slots[0].Start)

	// Monday the 17th falls back to the weekly rule
	require.Len(t, out["2024-06-17"], 8)
}

func TestExpandRulesAcrossMonthBoundary(t *testing.T) {
	rules := []models.AvailabilityRule{weeklyRule(1, "09:00", "10:00", 60)}

	out := ExpandRules(1, rules, day(2024, 6, 24), day(2024, 7, 8))

	require.Len(t, out, 3)
	assert.Contains(t, out, "2024-06-24")
	assert.Contains(t, out, "2024-07-01")
	assert.Contains(t, out, "2024-07-08")
}

func TestExpandRulesSkipsMalformedRules(t *testing.T) {
	rules := []models.AvailabilityRule{
		dateRule("2024-06-10", "not-a-time", "10:00", 30),
		dateRule("2024-06-10", "10:00", "09:00", 30), // reversed window
		dateRule("2024-06-10", "11:00", "12:00", 0),  // non-positive duration
		dateRule("2024-06-10", "14:00", "15:00", 30), // valid
	}

	out := ExpandRules(1, rules, day(2024, 6, 10), day(2024, 6, 10))

	slots := out["2024-06-10"]
	require.Len(t, slots, 2, "only the valid rule contributes")
	assert.Equal(t, at(14, 0), slots[0].Start)
}

func TestExpandRulesOmitsEmptyDates(t *testing.T) {
	rules := []models.AvailabilityRule{dateRule("2024-06-10", "09:00", "10:00", 30)}

	out := ExpandRules(1, rules, day(2024, 6, 9), day(2024, 6, 12))

	require.Len(t, out, 1)
	_, ok := out["2024-06-11"]
	assert.False(t, ok, "dates without slots are absent, not empty")
}

func TestExpandRulesUnionsSameDateRules(t *testing.T) {
	rules := []models.AvailabilityRule{
		dateRule("2024-06-10", "14:00", "15:00", 30),
		dateRule("2024-06-10", "09:00", "10:00", 30),
	}

	out := ExpandRules(1, rules, day(2024, 6, 10), day(2024, 6, 10))

	slots := out["2024-06-10"]
	require.Len(t, slots, 4)
	assert.Equal(t, at(9, 0), slots[0].Start, "union is sorted by start time")
	assert.Equal(t, at(14, 30), slots[3].Start)
}

func TestAnnotateMarksOverlappingSlotsBooked(t *testing.T) {
	rules := []models.AvailabilityRule{dateRule("2024-06-10", "09:00", "10:00", 30)}
	out := ExpandRules(1, rules, day(2024, 6, 10), day(2024, 6, 10))

	appointments := []models.Appointment{
		{DoctorID: 1, StartTime: at(9, 0), EndTime: at(9, 30), Status: "confirmed"},
	}

	Annotate(out, appointments)

	slots := out["2024-06-10"]
	assert.Equal(t, SlotBooked, slots[0].Status)
	assert.Equal(t, SlotFree, slots[1].Status, "slot starting at the appointment's end stays free")
}

func TestAnnotatePendingAppointmentsBlockToo(t *testing.T) {
	rules := []models.AvailabilityRule{dateRule("2024-06-10", "09:00", "10:00", 30)}
	out := ExpandRules(1, rules, day(2024, 6, 10), day(2024, 6, 10))

	appointments := []models.Appointment{
		{DoctorID: 1, StartTime: at(9, 30), EndTime: at(10, 0), Status: "pending"},
	}

	Annotate(out, appointments)

	slots := out["2024-06-10"]
	assert.Equal(t, SlotFree, slots[0].Status)
	assert.Equal(t, SlotBooked, slots[1].Status)
}
