package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/cache"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/config"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/validators"
)

type AuthHandler struct {
	db      *gorm.DB
	config  *config.Config
	intents *cache.IntentStore
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, intents *cache.IntentStore) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, intents: intents}
}

// --------- Requests ---------

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`

	// IntentID resumes a booking parked before the login redirect.
	IntentID string `json:"intent_id"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "The email domain does not look valid.",
		})
		return
	}

	var count int64
	h.db.Model(&models.Patient{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	patient := models.Patient{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "patient",
	}

	if err := h.db.Create(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_patient"})
		return
	}

	token, err := h.generateToken(&patient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"patient": gin.H{
			"id":    patient.ID,
			"name":  patient.Name,
			"email": patient.Email,
			"phone": patient.Phone,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var patient models.Patient
	if err := h.db.Where("email = ?", email).First(&patient).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(patient.PasswordHash),
		[]byte(req.Password),
	); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&patient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	resp := gin.H{
		"patient": gin.H{
			"id":    patient.ID,
			"name":  patient.Name,
			"email": patient.Email,
			"role":  patient.Role,
		},
		"token": token,
	}

	// A parked booking comes back as a typed value, not ambient state the
	// client has to dig out of storage.
	if req.IntentID != "" {
		if intent, err := h.intents.Take(c.Request.Context(), req.IntentID); err == nil && intent != nil {
			resp["pending_booking"] = intent
		}
	}

	c.JSON(http.StatusOK, resp)
}

// --------- Token ---------

func (h *AuthHandler) generateToken(p *models.Patient) (string, error) {
	claims := jwt.MapClaims{
		"sub":  float64(p.ID),
		"role": p.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
