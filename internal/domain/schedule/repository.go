package schedule

import (
	"context"
	"time"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Doctor --------
	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	// -------- Availability rules --------
	ListRules(
		ctx context.Context,
		doctorID uint,
	) ([]models.AvailabilityRule, error)

	AddRule(
		ctx context.Context,
		rule *models.AvailabilityRule,
	) error

	GetRule(
		ctx context.Context,
		doctorID uint,
		ruleID uint,
	) (*models.AvailabilityRule, error)

	RemoveRule(
		ctx context.Context,
		doctorID uint,
		ruleID uint,
	) error

	// -------- Appointments --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// CreateAppointmentExclusively performs the conflict re-check and the
	// insert as one atomic commit per doctor: of two concurrent attempts
	// for overlapping intervals, exactly one wins and the other fails
	// with slot_conflict.
	CreateAppointmentExclusively(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
