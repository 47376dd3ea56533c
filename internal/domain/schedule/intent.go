package schedule

import "time"

// PendingBookingIntent carries a patient's slot selection across the
// authentication redirect as an explicit value. The caller stores it
// before sending the patient to login and receives it back, typed, from
// the login response; nothing reads ambient shared state to resume a
// booking.
type PendingBookingIntent struct {
	DoctorID uint      `json:"doctor_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}
