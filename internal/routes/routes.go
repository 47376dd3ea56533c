package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/audit"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/cache"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/config"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/handlers"
	infraRepo "github.com/NovaClinicSystems/clinic-scheduler/internal/infra/repository"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/middleware"
	ucSchedule "github.com/NovaClinicSystems/clinic-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	slotCache := cache.NewSlotCache(rdb, cfg.SlotCacheTTL, log)
	intentStore := cache.NewIntentStore(rdb, cfg.IntentTTL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// 🧠 USE CASES — SCHEDULING
	// ======================================================
	listSlotsUC := ucSchedule.NewListAvailableSlots(
		scheduleRepo,
		slotCache,
	)

	bookSlotUC := ucSchedule.NewBookSlot(
		scheduleRepo,
		slotCache,
		time.Duration(cfg.DefaultSlotMinutes)*time.Minute,
	)

	addRuleUC := ucSchedule.NewAddAvailabilityRule(
		scheduleRepo,
		slotCache,
	)

	removeRuleUC := ucSchedule.NewRemoveAvailabilityRule(
		scheduleRepo,
		slotCache,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, intentStore)
	doctorHandler := handlers.NewDoctorHandler(db, slotCache, auditDispatcher)

	availabilityHandler := handlers.NewAvailabilityHandler(
		db,
		addRuleUC,
		removeRuleUC,
		auditDispatcher,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		listSlotsUC,
		bookSlotUC,
		slotCache,
		auditDispatcher,
		cfg.ClinicTimezone,
	)

	intentHandler := handlers.NewBookingIntentHandler(intentStore)
	reviewHandler := handlers.NewReviewHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/doctors", doctorHandler.List)
		api.GET("/doctors/:id", doctorHandler.Get)

		api.GET("/appointments/:doctorId/availability", appointmentHandler.Availability)
		api.GET("/appointments/doctor/:doctorId", appointmentHandler.BusyIntervals)

		api.GET("/reviews/:doctorId", reviewHandler.List)
		api.POST("/reviews/:doctorId", reviewHandler.Create)

		api.POST("/booking-intents", intentHandler.Create)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 PACIENTE AUTENTICADO
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/appointments", appointmentHandler.Book)
		}

		// ------------------------------
		// 🛡 ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RoleAdmin))
		{
			admin.POST("/doctors", doctorHandler.Create)
			admin.PUT("/doctors/:id", doctorHandler.Update)
			admin.DELETE("/doctors/:id", doctorHandler.Delete)

			admin.GET("/doctors/:id/availability", availabilityHandler.ListRules)
			admin.POST("/doctors/:id/availability", availabilityHandler.AddRule)
			admin.DELETE("/doctors/:id/availability/:ruleId", availabilityHandler.RemoveRule)

			admin.GET("/appointments", appointmentHandler.ListAll)
			admin.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
