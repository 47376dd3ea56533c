package schedule

import (
	"context"
	"time"

	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookSlotInput struct {
	DoctorID     uint
	PatientName  string
	PatientEmail string

	// Start is an ISO-8601 instant. End is optional: when empty, it is
	// derived from the default slot duration.
	Start string
	End   string
}

// ======================================================
// USE CASE
// ======================================================

// BookSlot is the only operation that creates appointments. It never
// trusts a client-side "free" flag: the conflict check runs freshly at
// commit time, atomically per doctor.
type BookSlot struct {
	repo            domain.Repository
	cache           SlotCache
	defaultDuration time.Duration
}

func NewBookSlot(
	repo domain.Repository,
	cache SlotCache,
	defaultDuration time.Duration,
) *BookSlot {
	return &BookSlot{
		repo:            repo,
		cache:           cache,
		defaultDuration: defaultDuration,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookSlot) Execute(
	ctx context.Context,
	in BookSlotInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Doctor
	// --------------------------------------------------
	if _, err := uc.repo.GetDoctorByID(ctx, in.DoctorID); err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Patient fields
	// --------------------------------------------------
	if in.PatientName == "" || in.PatientEmail == "" {
		return nil, httperr.ErrBusiness("invalid_input")
	}

	if !validators.IsEmailSyntaxValid(in.PatientEmail) {
		return nil, httperr.ErrBusiness("invalid_input")
	}

	// --------------------------------------------------
	// 3️⃣ Interval
	// --------------------------------------------------
	start, err := time.Parse(time.RFC3339, in.Start)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_input")
	}

	end := start.Add(uc.defaultDuration)
	if in.End != "" {
		end, err = time.Parse(time.RFC3339, in.End)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_input")
		}
	}

	if !start.Before(end) {
		return nil, httperr.ErrBusiness("invalid_input")
	}

	// --------------------------------------------------
	// 4️⃣ Authoritative re-check for the requested date
	// --------------------------------------------------
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, in.DoctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	requested := domain.Interval{Start: start, End: end}
	for _, ap := range appointments {
		if requested.Overlaps(domain.Interval{Start: ap.StartTime, End: ap.EndTime}) {
			return nil, httperr.ErrBusiness("slot_conflict")
		}
	}

	// --------------------------------------------------
	// 5️⃣ Atomic commit (re-checked under lock)
	// --------------------------------------------------
	ap := &models.Appointment{
		DoctorID:     in.DoctorID,
		PatientName:  in.PatientName,
		PatientEmail: in.PatientEmail,
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointmentExclusively(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Cached slot views for this doctor are now stale
	// --------------------------------------------------
	uc.cache.Invalidate(ctx, in.DoctorID)

	return ap, nil
}
