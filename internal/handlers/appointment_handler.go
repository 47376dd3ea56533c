package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/audit"
	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/dto"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httpresp"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/middleware"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/timezone"
	ucschedule "github.com/NovaClinicSystems/clinic-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db     *gorm.DB
	listUC *ucschedule.ListAvailableSlots
	bookUC *ucschedule.BookSlot
	cache  ucschedule.SlotCache
	audit  *audit.Dispatcher
	loc    *time.Location
}

func NewAppointmentHandler(
	db *gorm.DB,
	listUC *ucschedule.ListAvailableSlots,
	bookUC *ucschedule.BookSlot,
	cache ucschedule.SlotCache,
	auditDispatcher *audit.Dispatcher,
	clinicTimezone string,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:     db,
		listUC: listUC,
		bookUC: bookUC,
		cache:  cache,
		audit:  auditDispatcher,
		loc:    timezone.Location(clinicTimezone),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	Doctor       uint   `json:"doctor" binding:"required"`
	PatientName  string `json:"patientName" binding:"required"`
	PatientEmail string `json:"patientEmail" binding:"required"`
	Start        string `json:"start" binding:"required"` // ISO-8601 instant
	End          string `json:"end"`                      // optional explicit slot end
}

// ======================================================
// AVAILABILITY
// ======================================================

// Availability returns the doctor's candidate slots for [from, to],
// grouped by date and tagged free/booked.
func (h *AppointmentHandler) Availability(c *gin.Context) {
	doctorID, ok := paramID(c, "doctorId")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	from, err := h.parseDateParam(c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid 'from' date.")
		return
	}

	to, err := h.parseDateParam(c.Query("to"))
	if err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid 'to' date.")
		return
	}

	slots, err := h.listUC.Execute(c.Request.Context(), doctorID, from, to)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "doctor_not_found"):
			httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		case httperr.IsBusiness(err, "invalid_input"):
			httperr.BadRequest(c, "invalid_input", "Invalid date range.")
		default:
			httperr.Internal(c, "failed_to_list_slots", "Could not list available slots.")
		}
		return
	}

	c.JSON(http.StatusOK, slots)
}

// BusyIntervals feeds the profile calendar with the doctor's taken time,
// stripped of patient identity.
func (h *AppointmentHandler) BusyIntervals(c *gin.Context) {
	doctorID, ok := paramID(c, "doctorId")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Select("start_time", "end_time").
		Where("doctor_id = ?", doctorID).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	out := make([]dto.BusyIntervalDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.BusyIntervalDTO{Start: ap.StartTime, End: ap.EndTime})
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid booking payload.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucschedule.BookSlotInput{
		DoctorID:     req.Doctor,
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
		Start:        req.Start,
		End:          req.End,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "doctor_not_found"):
			httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		case httperr.IsBusiness(err, "invalid_input"):
			httperr.BadRequest(c, "invalid_input", "Invalid booking request.")
		case httperr.IsBusiness(err, "slot_conflict"):
			h.audit.Dispatch(audit.Event{
				ActorID: &patientID,
				Action:  "booking_conflict",
				Entity:  "appointment",
				Metadata: map[string]any{
					"doctor_id": req.Doctor,
					"start":     req.Start,
				},
			})
			httperr.Conflict(c, "slot_conflict", "That slot was just taken. Pick another one.")
		default:
			httperr.Internal(c, "failed_to_book", "Could not book the appointment.")
		}
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &patientID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.Created(c, ap)
}

// ======================================================
// ADMIN
// ======================================================

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	var aps []models.Appointment
	if err := h.db.
		Preload("Doctor").
		Order("start_time DESC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			DoctorName:   ap.Doctor.Name,
			PatientName:  ap.PatientName,
			PatientEmail: ap.PatientEmail,
			Start:        ap.StartTime,
			End:          ap.EndTime,
			Status:       ap.Status,
		})
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.First(&ap, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if err := domain.CanConfirm(domain.Status(ap.Status)); err != nil {
		httperr.BadRequest(c, "invalid_state", "Appointment cannot be confirmed.")
		return
	}

	now := time.Now().In(h.loc)
	ap.Status = string(domain.StatusConfirmed)
	ap.ConfirmedAt = &now

	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_confirm", "Could not confirm the appointment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	c.JSON(http.StatusOK, ap)
}

// Delete frees the appointment's interval. Rescheduling is delete +
// re-book; start/end are never edited in place.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.First(&ap, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if err := h.db.Delete(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_delete", "Could not delete the appointment.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), ap.DoctorID)

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

// parseDateParam accepts a plain date or a full instant, as older clients
// send month boundaries as ISO timestamps.
func (h *AppointmentHandler) parseDateParam(v string) (time.Time, error) {
	if t, err := time.ParseInLocation(domain.DateKeyLayout, v, h.loc); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(h.loc), nil
}
