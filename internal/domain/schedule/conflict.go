package schedule

import "github.com/NovaClinicSystems/clinic-scheduler/internal/models"

// ======================================================
// Conflict Detector
// ======================================================

// Annotate marks every candidate slot booked when it overlaps at least one
// existing appointment for the doctor. Pending appointments block just
// like confirmed ones. Pure read-side projection: appointments are never
// mutated, and the result is valid only for the query that produced it.
func Annotate(slotsByDate map[string][]Slot, appointments []models.Appointment) {
	for _, slots := range slotsByDate {
		for i := range slots {
			slots[i].Status = SlotFree
			for _, ap := range appointments {
				if slots[i].Interval().Overlaps(Interval{Start: ap.StartTime, End: ap.EndTime}) {
					slots[i].Status = SlotBooked
					break
				}
			}
		}
	}
}
