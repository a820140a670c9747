package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/config"
	"github.com/highburybarber/booking-api/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	return db
}

// Migrate runs AutoMigrate plus the raw indexes the schema depends on.
// Shared with the sqlite-backed test setup so tests exercise the same
// constraints production relies on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Employee{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Blackout{},
		&models.Holiday{},
		&models.Appointment{},
		&models.Sale{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// Slot exclusivity is load-bearing: at most one non-cancelled
	// appointment per (employee, date, slot). A prior availability read is
	// advisory only; this index is the authoritative check.
	return db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot_exclusive
        ON appointments (employee_id, date, time_slot)
        WHERE status <> 'cancelada'
    `).Error
}
