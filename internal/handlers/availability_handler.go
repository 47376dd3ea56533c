package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/audit"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httpresp"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/middleware"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
	ucschedule "github.com/NovaClinicSystems/clinic-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db       *gorm.DB
	addUC    *ucschedule.AddAvailabilityRule
	removeUC *ucschedule.RemoveAvailabilityRule
	audit    *audit.Dispatcher
}

func NewAvailabilityHandler(
	db *gorm.DB,
	addUC *ucschedule.AddAvailabilityRule,
	removeUC *ucschedule.RemoveAvailabilityRule,
	audit *audit.Dispatcher,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:       db,
		addUC:    addUC,
		removeUC: removeUC,
		audit:    audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// AddRuleRequest carries the stored rule shape:
// {type, dayOfWeek, startTime, endTime, duration, date?}
type AddRuleRequest struct {
	Kind        string `json:"type" binding:"required"`
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	DurationMin int    `json:"duration" binding:"required"`
	Date        string `json:"date"`
}

// ======================================================
// RULES
// ======================================================

func (h *AvailabilityHandler) ListRules(c *gin.Context) {
	doctorID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	var rules []models.AvailabilityRule
	if err := h.db.
		Where("doctor_id = ?", doctorID).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		httperr.Internal(c, "failed_to_list_rules", "Could not list availability rules.")
		return
	}

	httpresp.List(c, rules)
}

func (h *AvailabilityHandler) AddRule(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	doctorID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	var req AddRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid rule payload.")
		return
	}

	rule, err := h.addUC.Execute(c.Request.Context(), doctorID, models.AvailabilityRule{
		Kind:        req.Kind,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		DurationMin: req.DurationMin,
		Date:        req.Date,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "doctor_not_found"):
			httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		case httperr.IsBusiness(err, "invalid_input"):
			httperr.BadRequest(c, "invalid_input", "Invalid availability rule.")
		default:
			httperr.Internal(c, "failed_to_add_rule", "Could not add availability rule.")
		}
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "availability_rule_added",
		Entity:   "availability_rule",
		EntityID: &rule.ID,
	})

	httpresp.Created(c, rule)
}

func (h *AvailabilityHandler) RemoveRule(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	doctorID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	ruleID, ok := paramID(c, "ruleId")
	if !ok {
		httperr.BadRequest(c, "invalid_rule_id", "Invalid rule id.")
		return
	}

	if err := h.removeUC.Execute(c.Request.Context(), doctorID, ruleID); err != nil {
		if httperr.IsBusiness(err, "rule_not_found") {
			httperr.NotFound(c, "rule_not_found", "Availability rule not found.")
			return
		}
		httperr.Internal(c, "failed_to_remove_rule", "Could not remove availability rule.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "availability_rule_removed",
		Entity:   "availability_rule",
		EntityID: &ruleID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context, name string) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id64), true
}
