package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/audit"
	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httpresp"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/middleware"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
	ucschedule "github.com/NovaClinicSystems/clinic-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type DoctorHandler struct {
	db    *gorm.DB
	cache ucschedule.SlotCache
	audit *audit.Dispatcher
}

func NewDoctorHandler(db *gorm.DB, cache ucschedule.SlotCache, audit *audit.Dispatcher) *DoctorHandler {
	return &DoctorHandler{db: db, cache: cache, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization" binding:"required"`

	Experience     string `json:"experience"`
	Education      string `json:"education"`
	Certifications string `json:"certifications"`
	Languages      string `json:"languages"`
	Hospital       string `json:"hospital"`

	// Rules declared together with the doctor, as the admin form posts
	// them.
	AvailabilityRules []models.AvailabilityRule `json:"availability_rules"`
}

type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Specialization *string `json:"specialization"`
	Experience     *string `json:"experience"`
	Education      *string `json:"education"`
	Certifications *string `json:"certifications"`
	Languages      *string `json:"languages"`
	Hospital       *string `json:"hospital"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *DoctorHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Doctor{})

	specialization := strings.TrimSpace(strings.ToLower(c.Query("specialization")))
	if specialization != "" {
		q = q.Where("LOWER(specialization) = ?", specialization)
	}

	var doctors []models.Doctor
	if err := q.Order("name ASC").Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not list doctors.")
		return
	}

	httpresp.List(c, doctors)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var doctor models.Doctor
	if err := h.db.Preload("AvailabilityRules").First(&doctor, id).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// ======================================================
// ADMIN
// ======================================================

func (h *DoctorHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor payload.")
		return
	}

	for i := range req.AvailabilityRules {
		if err := domain.ValidateRule(&req.AvailabilityRules[i]); err != nil {
			httperr.BadRequest(c, "invalid_input", "Invalid availability rule.")
			return
		}
	}

	doctor := models.Doctor{
		Name:              req.Name,
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:             req.Phone,
		Specialization:    req.Specialization,
		Experience:        req.Experience,
		Education:         req.Education,
		Certifications:    req.Certifications,
		Languages:         req.Languages,
		Hospital:          req.Hospital,
		AvailabilityRules: req.AvailabilityRules,
	}

	if err := h.db.Create(&doctor).Error; err != nil {
		httperr.Internal(c, "failed_to_create_doctor", "Could not create doctor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "doctor_created",
		Entity:   "doctor",
		EntityID: &doctor.ID,
	})

	httpresp.Created(c, doctor)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var doctor models.Doctor
	if err := h.db.First(&doctor, id).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor payload.")
		return
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	apply(&doctor.Name, req.Name)
	apply(&doctor.Phone, req.Phone)
	apply(&doctor.Specialization, req.Specialization)
	apply(&doctor.Experience, req.Experience)
	apply(&doctor.Education, req.Education)
	apply(&doctor.Certifications, req.Certifications)
	apply(&doctor.Languages, req.Languages)
	apply(&doctor.Hospital, req.Hospital)

	if req.Email != nil {
		doctor.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if err := h.db.Save(&doctor).Error; err != nil {
		httperr.Internal(c, "failed_to_update_doctor", "Could not update doctor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "doctor_updated",
		Entity:   "doctor",
		EntityID: &doctor.ID,
	})

	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}
	doctorID := uint(id64)

	var doctor models.Doctor
	if err := h.db.First(&doctor, doctorID).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	// rules and appointments have no existence outside the doctor
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&doctor).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_doctor", "Could not delete doctor.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), doctorID)

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "doctor_deleted",
		Entity:   "doctor",
		EntityID: &doctorID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
