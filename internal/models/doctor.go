package models

import "time"

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string `gorm:"size:100;not null" json:"name"`
	Email          string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone          string `gorm:"size:20" json:"phone"`
	Specialization string `gorm:"size:100;index" json:"specialization"`

	Experience     string `gorm:"size:255" json:"experience"`
	Education      string `gorm:"size:255" json:"education"`
	Certifications string `gorm:"size:255" json:"certifications"`
	Languages      string `gorm:"size:255" json:"languages"`
	Hospital       string `gorm:"size:100" json:"hospital"`

	Rating float64 `json:"rating"`

	// Rules never exist outside a doctor: deleting the doctor deletes them.
	AvailabilityRules []AvailabilityRule `gorm:"constraint:OnDelete:CASCADE;" json:"availability_rules"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
