package db

import (
	"log"
	"time"

	"github.com/VelourStudioApp/salon-scheduler/internal/config"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Promotion{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Booking{},
		&models.Payment{},
		&models.NotificationRecord{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Slot exclusivity is also enforced by the store itself.
	// Partial unique indexes are outside what AutoMigrate can
	// express, so they are created by hand.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_stylist_slot
        ON bookings (stylist_id, date, time_of_day)
        WHERE status <> 'cancelled' AND stylist_id IS NOT NULL
    `)
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_client_slot
        ON bookings (client_id, date, time_of_day)
        WHERE status <> 'cancelled' AND stylist_id IS NULL
    `)

	db.Exec(`
        UPDATE salons
        SET timezone = 'America/New_York'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
