package models

import "time"

// Review de paciente, sem login obrigatório
type Review struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`

	PatientName string `gorm:"size:100" json:"patient_name"`
	Rating      int    `gorm:"not null" json:"rating"` // 1..5
	Comment     string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
