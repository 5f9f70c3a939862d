package database

import (
	"fmt"
	"time"

	"github.com/lshigami/Cryptoquest/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxConnectAttempts = 30
	connectRetryWait   = time.Second
)

// NewDatabase opens a PostgreSQL connection and verifies connectivity before
// returning. The process refuses to serve if the database stays unreachable
// after a bounded number of attempts.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			// Unique-constraint violations surface as gorm.ErrDuplicatedKey, so
			// lost check-then-write races map to the same conflict error as the
			// explicit duplicate checks.
			TranslateError: true,
		})
		if err == nil {
			if sqlDB, pingErr := db.DB(); pingErr == nil {
				if pingErr = sqlDB.Ping(); pingErr == nil {
					log.Info().Int("attempt", attempt).Msg("Connected to database")
					return db, nil
				}
				err = pingErr
			} else {
				err = pingErr
			}
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("Database not reachable, retrying")
		time.Sleep(connectRetryWait)
	}

	log.Error().Err(err).Msg("Giving up connecting to database")
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxConnectAttempts, err)
}
