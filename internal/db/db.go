package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// exclusionDDL backs the no-overlap rule in storage: two occupying bookings
// of the same barber can never share an instant.
const exclusionDDL = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
    ) THEN
        ALTER TABLE bookings
            ADD CONSTRAINT bookings_no_overlap
            EXCLUDE USING gist (
                barber_id WITH =,
                tstzrange(start_time, end_time, '[)') WITH &&
            )
            WHERE (status IN ('pending', 'confirmed', 'completed'));
    END IF;
END
$$;`

const checksDDL = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'ratings_stars_range'
    ) THEN
        ALTER TABLE ratings
            ADD CONSTRAINT ratings_stars_range CHECK (stars BETWEEN 1 AND 5);
    END IF;
END
$$;`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if !cfg.IsProduction() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db: sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.OrNop(log).Info("database ready", zap.Int("max_open_conns", 10))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("db: btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Service{},
		&models.WorkingHours{},
		&models.BlockedTime{},
		&models.Booking{},
		&models.Rating{},
		&models.EventLog{},
	); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}

	if err := db.Exec(exclusionDDL).Error; err != nil {
		return fmt.Errorf("db: bookings exclusion constraint: %w", err)
	}
	if err := db.Exec(checksDDL).Error; err != nil {
		return fmt.Errorf("db: ratings check: %w", err)
	}
	return nil
}
