package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

func TestAddAvailabilityRuleStoresWeeklyRule(t *testing.T) {
	repo := newMemRepo(1)
	cache := newSpyCache()
	uc := NewAddAvailabilityRule(repo, cache)

	rule, err := uc.Execute(context.Background(), 1, models.AvailabilityRule{
		Kind:        "weekly",
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "12:00",
		DurationMin: 30,
	})
	require.NoError(t, err)

	assert.NotZero(t, rule.ID)
	assert.Equal(t, uint(1), rule.DoctorID)
	assert.Equal(t, []uint{1}, cache.invalidateCalls)

	stored, err := repo.ListRules(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAddAvailabilityRuleDerivesWeekdayForDateRule(t *testing.T) {
	uc := NewAddAvailabilityRule(newMemRepo(1), newSpyCache())

	// 2024-06-10 is a Monday
	rule, err := uc.Execute(context.Background(), 1, models.AvailabilityRule{
		Kind:        "date",
		Date:        "2024-06-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
		DurationMin: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rule.DayOfWeek)
}

func TestAddAvailabilityRuleRejectsReversedWindow(t *testing.T) {
	repo := newMemRepo(1)
	cache := newSpyCache()
	uc := NewAddAvailabilityRule(repo, cache)

	_, err := uc.Execute(context.Background(), 1, models.AvailabilityRule{
		Kind:        "weekly",
		DayOfWeek:   1,
		StartTime:   "12:00",
		EndTime:     "09:00",
		DurationMin: 30,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_input"))

	// nothing stored, nothing invalidated
	stored, _ := repo.ListRules(context.Background(), 1)
	assert.Empty(t, stored)
	assert.Empty(t, cache.invalidateCalls)
}

func TestAddAvailabilityRuleRejectsZeroDuration(t *testing.T) {
	uc := NewAddAvailabilityRule(newMemRepo(1), newSpyCache())

	_, err := uc.Execute(context.Background(), 1, models.AvailabilityRule{
		Kind:        "weekly",
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "12:00",
		DurationMin: 0,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_input"))
}

func TestAddAvailabilityRuleUnknownDoctor(t *testing.T) {
	uc := NewAddAvailabilityRule(newMemRepo(1), newSpyCache())

	_, err := uc.Execute(context.Background(), 7, models.AvailabilityRule{
		Kind:        "weekly",
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "12:00",
		DurationMin: 30,
	})
	assert.True(t, httperr.IsBusiness(err, "doctor_not_found"))
}

func TestRemoveAvailabilityRule(t *testing.T) {
	repo := newMemRepo(1)
	cache := newSpyCache()

	added, err := NewAddAvailabilityRule(repo, cache).Execute(context.Background(), 1, models.AvailabilityRule{
		Kind:        "weekly",
		DayOfWeek:   2,
		StartTime:   "09:00",
		EndTime:     "12:00",
		DurationMin: 30,
	})
	require.NoError(t, err)

	err = NewRemoveAvailabilityRule(repo, cache).Execute(context.Background(), 1, added.ID)
	require.NoError(t, err)

	stored, _ := repo.ListRules(context.Background(), 1)
	assert.Empty(t, stored)
	assert.Len(t, cache.invalidateCalls, 2)
}

func TestRemoveAvailabilityRuleNotFound(t *testing.T) {
	uc := NewRemoveAvailabilityRule(newMemRepo(1), newSpyCache())

	err := uc.Execute(context.Background(), 1, 999)
	assert.True(t, httperr.IsBusiness(err, "rule_not_found"))
}
