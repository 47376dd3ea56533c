package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/cache"
	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
)

// BookingIntentHandler parks a slot selection before the patient is sent
// to login, so the booking can resume from the login response.
type BookingIntentHandler struct {
	intents *cache.IntentStore
}

func NewBookingIntentHandler(intents *cache.IntentStore) *BookingIntentHandler {
	return &BookingIntentHandler{intents: intents}
}

type CreateIntentRequest struct {
	Doctor uint   `json:"doctor" binding:"required"`
	Start  string `json:"start" binding:"required"`
	End    string `json:"end" binding:"required"`
}

func (h *BookingIntentHandler) Create(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid intent payload.")
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid intent start.")
		return
	}

	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil || !start.Before(end) {
		httperr.BadRequest(c, "invalid_input", "Invalid intent end.")
		return
	}

	id, err := h.intents.Save(c.Request.Context(), domain.PendingBookingIntent{
		DoctorID: req.Doctor,
		Start:    start,
		End:      end,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_store_intent", "Could not store the booking intent.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"intent_id": id})
}
