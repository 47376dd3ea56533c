package models

import "time"

// AvailabilityRule is a doctor-declared availability window. A "date" rule
// applies to a single calendar date; a "weekly" rule recurs on DayOfWeek.
// JSON tags preserve the stored rule shape:
// {type, dayOfWeek, startTime, endTime, duration, date?}
type AvailabilityRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`

	Kind      string `gorm:"size:10;not null" json:"type"` // "date" | "weekly"
	DayOfWeek int    `json:"dayOfWeek"`                    // 0 = Sunday

	StartTime   string `gorm:"size:5" json:"startTime"` // "HH:MM"
	EndTime     string `gorm:"size:5" json:"endTime"`   // "HH:MM"
	DurationMin int    `json:"duration"`

	Date string `gorm:"size:10" json:"date,omitempty"` // "YYYY-MM-DD", kind=date only

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
