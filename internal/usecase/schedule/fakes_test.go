package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

// memRepo is an in-memory Repository with the same exclusivity promise
// the gorm implementation gives through its transaction.
type memRepo struct {
	mu sync.Mutex

	doctors      map[uint]*models.Doctor
	rules        map[uint][]models.AvailabilityRule
	appointments []models.Appointment

	nextRuleID uint
	nextApID   uint

	listErr error
}

func newMemRepo(doctorIDs ...uint) *memRepo {
	r := &memRepo{
		doctors:    make(map[uint]*models.Doctor),
		rules:      make(map[uint][]models.AvailabilityRule),
		nextRuleID: 1,
		nextApID:   1,
	}
	for _, id := range doctorIDs {
		r.doctors[id] = &models.Doctor{ID: id, Name: "Dr. Test"}
	}
	return r
}

var _ domain.Repository = (*memRepo)(nil)

func (r *memRepo) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.doctors[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return d, nil
}

func (r *memRepo) ListRules(
	ctx context.Context,
	doctorID uint,
) ([]models.AvailabilityRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]models.AvailabilityRule(nil), r.rules[doctorID]...), nil
}

func (r *memRepo) AddRule(
	ctx context.Context,
	rule *models.AvailabilityRule,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule.ID = r.nextRuleID
	r.nextRuleID++
	r.rules[rule.DoctorID] = append(r.rules[rule.DoctorID], *rule)
	return nil
}

func (r *memRepo) GetRule(
	ctx context.Context,
	doctorID uint,
	ruleID uint,
) (*models.AvailabilityRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rule := range r.rules[doctorID] {
		if rule.ID == ruleID {
			copied := rule
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *memRepo) RemoveRule(
	ctx context.Context,
	doctorID uint,
	ruleID uint,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.rules[doctorID][:0]
	for _, rule := range r.rules[doctorID] {
		if rule.ID != ruleID {
			kept = append(kept, rule)
		}
	}
	r.rules[doctorID] = kept
	return nil
}

func (r *memRepo) ListAppointmentsForPeriod(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID != doctorID {
			continue
		}
		if ap.StartTime.Before(end) && start.Before(ap.EndTime) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) CreateAppointmentExclusively(
	ctx context.Context,
	ap *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	requested := domain.Interval{Start: ap.StartTime, End: ap.EndTime}
	for _, existing := range r.appointments {
		if existing.DoctorID != ap.DoctorID {
			continue
		}
		if requested.Overlaps(domain.Interval{Start: existing.StartTime, End: existing.EndTime}) {
			return httperr.ErrBusiness("slot_conflict")
		}
	}

	ap.ID = r.nextApID
	r.nextApID++
	r.appointments = append(r.appointments, *ap)
	return nil
}

// ---- cache fakes ----

// spyCache records calls; GetSlots always misses unless primed.
type spyCache struct {
	mu sync.Mutex

	primed map[string]map[string][]domain.Slot

	setCalls        int
	invalidateCalls []uint
}

func newSpyCache() *spyCache {
	return &spyCache{primed: make(map[string]map[string][]domain.Slot)}
}

var _ SlotCache = (*spyCache)(nil)

func cacheKey(doctorID uint, from, to time.Time) string {
	return fmt.Sprintf("%d/%s/%s", doctorID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (c *spyCache) prime(doctorID uint, from, to time.Time, slots map[string][]domain.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primed[cacheKey(doctorID, from, to)] = slots
}

func (c *spyCache) GetSlots(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) (map[string][]domain.Slot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slots, ok := c.primed[cacheKey(doctorID, from, to)]
	return slots, ok
}

func (c *spyCache) SetSlots(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
	slots map[string][]domain.Slot,
) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
}

func (c *spyCache) Invalidate(ctx context.Context, doctorID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateCalls = append(c.invalidateCalls, doctorID)
}
