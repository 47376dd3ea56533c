package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

func TestValidateRuleWeekly(t *testing.T) {
	rule := weeklyRule(3, "09:00", "17:00", 30)
	rule.Date = "2024-06-10" // must be cleared for weekly rules

	require.NoError(t, ValidateRule(&rule))
	assert.Empty(t, rule.Date)
}

func TestValidateRuleDateDerivesDayOfWeek(t *testing.T) {
	rule := dateRule("2024-06-10", "09:00", "10:00", 30) // a Monday
	rule.DayOfWeek = 5                                   // caller-supplied value is ignored

	require.NoError(t, ValidateRule(&rule))
	assert.Equal(t, 1, rule.DayOfWeek)
}

func TestValidateRuleRejections(t *testing.T) {
	cases := []struct {
		name string
		rule models.AvailabilityRule
	}{
		{"end before start", dateRule("2024-06-10", "10:00", "09:00", 30)},
		{"start equals end", dateRule("2024-06-10", "10:00", "10:00", 30)},
		{"zero duration", dateRule("2024-06-10", "09:00", "10:00", 0)},
		{"negative duration", dateRule("2024-06-10", "09:00", "10:00", -15)},
		{"unparseable start", dateRule("2024-06-10", "9am", "10:00", 30)},
		{"unparseable date", dateRule("10/06/2024", "09:00", "10:00", 30)},
		{"missing date for date rule", dateRule("", "09:00", "10:00", 30)},
		{"weekly day of week out of range", weeklyRule(7, "09:00", "10:00", 30)},
		{"unknown kind", models.AvailabilityRule{Kind: "monthly", StartTime: "09:00", EndTime: "10:00", DurationMin: 30}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRule(&tc.rule)
			assert.True(t, httperr.IsBusiness(err, "invalid_input"), "got %v", err)
		})
	}
}
