package dto

import "time"

// AppointmentListDTO is the admin all-appointments row.
type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	DoctorName   string    `json:"doctor_name"`
	PatientName  string    `json:"patient_name"`
	PatientEmail string    `json:"patient_email"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Status       string    `json:"status"`
}

// BusyIntervalDTO is the public per-doctor busy feed: just enough for a
// client to grey out taken slots, nothing about who booked them.
type BusyIntervalDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
