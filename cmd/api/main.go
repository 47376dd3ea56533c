package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/NovaClinicSystems/clinic-scheduler/internal/config"
	dbpkg "github.com/NovaClinicSystems/clinic-scheduler/internal/db"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/logger"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/middleware"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/routes"
)

func main() {

	log := logger.New()
	defer log.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg, log)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	// redis indisponível degrada para cache-miss, não derruba a API
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, slot cache disabled", zap.Error(err))
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
