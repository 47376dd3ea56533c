package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *ScheduleGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// --------------------------------------------------
// Availability rules
// --------------------------------------------------

func (r *ScheduleGormRepository) ListRules(
	ctx context.Context,
	doctorID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *ScheduleGormRepository) AddRule(
	ctx context.Context,
	rule *models.AvailabilityRule,
) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ScheduleGormRepository) GetRule(
	ctx context.Context,
	doctorID uint,
	ruleID uint,
) (*models.AvailabilityRule, error) {

	var rule models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", ruleID, doctorID).
		First(&rule).Error; err != nil {
		return nil, err
	}

	return &rule, nil
}

func (r *ScheduleGormRepository) RemoveRule(
	ctx context.Context,
	doctorID uint,
	ruleID uint,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", ruleID, doctorID).
		Delete(&models.AvailabilityRule{}).Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND start_time < ? AND end_time > ?",
			doctorID, end, start,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// CreateAppointmentExclusively re-checks for overlap under a row lock and
// inserts in the same transaction. The unique index over
// (doctor_id, start_time) is the backstop: a concurrent commit that wins
// the race makes this one fail, and the violation is reported as
// slot_conflict, never as a half-created appointment.
func (r *ScheduleGormRepository) CreateAppointmentExclusively(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"doctor_id = ? AND start_time < ? AND end_time > ?",
				ap.DoctorID, ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("slot_conflict")
		}

		if err := tx.Create(ap).Error; err != nil {
			if httperr.IsConflictViolation(err) {
				return httperr.ErrBusiness("slot_conflict")
			}
			return err
		}

		return nil
	})
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
