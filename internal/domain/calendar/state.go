package calendar

import (
	"sort"
	"time"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
)

// ======================================================
// Calendar Navigation State
// ======================================================

// Selection is what ConfirmBooking hands to the booking coordinator.
type Selection struct {
	DoctorID uint
	Start    time.Time
	End      time.Time
}

// State is the client-visible calendar cursor: month in view, selected
// date, selected slot. Pure state machine, no business rules; the slot
// map it navigates comes from the slot generator.
type State struct {
	DoctorID    uint
	ViewedMonth time.Time // first day of the month in view

	selectedDate time.Time // zero = none
	selectedSlot *schedule.Slot

	slotsByDate map[string][]schedule.Slot
}

func NewState(doctorID uint, now time.Time) *State {
	return &State{
		DoctorID:    doctorID,
		ViewedMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}
}

// Range is the closed date range slots should be requested for: the whole
// viewed month.
func (s *State) Range() (from time.Time, to time.Time) {
	from = s.ViewedMonth
	to = s.ViewedMonth.AddDate(0, 1, -1)
	return from, to
}

// LoadSlots installs a freshly generated slot map. The first date with at
// least one slot is auto-selected when nothing is selected yet.
func (s *State) LoadSlots(slotsByDate map[string][]schedule.Slot) {
	s.slotsByDate = slotsByDate

	if !s.selectedDate.IsZero() || len(slotsByDate) == 0 {
		return
	}

	keys := make([]string, 0, len(slotsByDate))
	for k := range slotsByDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if d, err := time.ParseInLocation(schedule.DateKeyLayout, keys[0], s.ViewedMonth.Location()); err == nil {
		s.selectedDate = d
	}
}

// ChangeMonth shifts the viewed month by dir (±1) and clears the current
// selection; the caller is expected to re-request slots for Range.
func (s *State) ChangeMonth(dir int) {
	s.ViewedMonth = s.ViewedMonth.AddDate(0, dir, 0)
	s.selectedDate = time.Time{}
	s.selectedSlot = nil
	s.slotsByDate = nil
}

func (s *State) SelectDate(d time.Time) {
	s.selectedDate = d
	s.selectedSlot = nil
}

func (s *State) SelectedDate() (time.Time, bool) {
	return s.selectedDate, !s.selectedDate.IsZero()
}

// SelectSlot accepts only a free slot belonging to the selected date.
func (s *State) SelectSlot(start time.Time) error {
	if s.selectedDate.IsZero() {
		return httperr.ErrBusiness("no_date_selected")
	}

	for _, slot := range s.slotsByDate[schedule.DateKey(s.selectedDate)] {
		if !slot.Start.Equal(start) {
			continue
		}
		if slot.Status == schedule.SlotBooked {
			return httperr.ErrBusiness("slot_conflict")
		}
		picked := slot
		s.selectedSlot = &picked
		return nil
	}

	return httperr.ErrBusiness("slot_not_in_date")
}

// ConfirmBooking hands the selection over; a no-op when no slot is
// selected.
func (s *State) ConfirmBooking() (Selection, bool) {
	if s.selectedSlot == nil {
		return Selection{}, false
	}

	return Selection{
		DoctorID: s.DoctorID,
		Start:    s.selectedSlot.Start,
		End:      s.selectedSlot.End,
	}, true
}
