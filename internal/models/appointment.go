package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint   `gorm:"uniqueIndex:idx_appointments_doctor_start" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	PatientName  string `gorm:"size:100;not null" json:"patient_name"`
	PatientEmail string `gorm:"size:100" json:"patient_email"`

	// StartTime/EndTime are immutable after creation; rescheduling is
	// modeled as delete + re-book.
	StartTime time.Time `gorm:"uniqueIndex:idx_appointments_doctor_start" json:"start"`
	EndTime   time.Time `json:"end"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ConfirmedAt *time.Time `json:"confirmed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
