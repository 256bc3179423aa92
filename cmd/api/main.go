package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/VelourStudioApp/salon-scheduler/internal/config"
	dbpkg "github.com/VelourStudioApp/salon-scheduler/internal/db"
	infraRepo "github.com/VelourStudioApp/salon-scheduler/internal/infra/repository"
	"github.com/VelourStudioApp/salon-scheduler/internal/media"
	"github.com/VelourStudioApp/salon-scheduler/internal/middleware"
	"github.com/VelourStudioApp/salon-scheduler/internal/notify"
	"github.com/VelourStudioApp/salon-scheduler/internal/payments"
	"github.com/VelourStudioApp/salon-scheduler/internal/routes"
	"github.com/VelourStudioApp/salon-scheduler/internal/scheduler"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway, err := payments.NewMercadoPagoGateway(cfg.MPAccessToken, cfg.Currency)
	if err != nil {
		log.Fatalf("failed to init payment gateway: %v", err)
	}

	var storage *media.Storage
	if cfg.S3Bucket != "" {
		storage = media.NewStorage(cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, reminder run-lock disabled: %v", err)
			rdb = nil
		}
	}

	reminders := scheduler.NewReminderScheduler(
		infraRepo.NewBookingGormRepository(db),
		notify.NewGormOutbox(db),
		rdb,
		time.Hour,
		cfg.ReminderLookaheadDays,
	)
	go reminders.Start(ctx)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, gateway, storage)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
