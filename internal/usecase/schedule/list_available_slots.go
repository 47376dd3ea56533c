package schedule

import (
	"context"
	"time"

	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
)

type ListAvailableSlots struct {
	repo  domain.Repository
	cache SlotCache
}

func NewListAvailableSlots(repo domain.Repository, cache SlotCache) *ListAvailableSlots {
	return &ListAvailableSlots{repo: repo, cache: cache}
}

// Execute expands the doctor's rules over [from, to] and annotates the
// candidate slots against the doctor's existing appointments. The result
// is grouped by date key; dates without slots are absent.
func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) (map[string][]domain.Slot, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	if to.Before(from) {
		return nil, httperr.ErrBusiness("invalid_input")
	}

	if cached, ok := uc.cache.GetSlots(ctx, doctorID, from, to); ok {
		return cached, nil
	}

	rules, err := uc.repo.ListRules(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	slots := domain.ExpandRules(doctorID, rules, from, to)

	dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	dayEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	domain.Annotate(slots, appointments)

	uc.cache.SetSlots(ctx, doctorID, from, to, slots)

	return slots, nil
}
