package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httpresp"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type CreateReviewRequest struct {
	PatientName string `json:"patient_name"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment"`
}

func (h *ReviewHandler) List(c *gin.Context) {
	doctorID, ok := paramID(c, "doctorId")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	doctorID, ok := paramID(c, "doctorId")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid review payload.")
		return
	}

	var doctor models.Doctor
	if err := h.db.First(&doctor, doctorID).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	review := models.Review{
		DoctorID:    doctorID,
		PatientName: req.PatientName,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}

	// review + aggregate rating andam juntos
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("doctor_id = ?", doctorID).
			Select("AVG(rating)").
			Scan(&avg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Doctor{}).
			Where("id = ?", doctorID).
			Update("rating", avg).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_review", "Could not save the review.")
		return
	}

	httpresp.Created(c, review)
}
