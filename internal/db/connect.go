package db

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database. An empty dsn selects the embedded sqlite file
// at sqlitePath (the default deployment); a non-empty dsn selects postgres.
// Postgres connections are retried to let the database come up first.
func Connect(dsn, sqlitePath string) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	// TranslateError lets callers detect duplicate-key conflicts portably
	// across sqlite and postgres (gorm.ErrDuplicatedKey).
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel), TranslateError: true}

	if dsn == "" {
		conn, err := gorm.Open(sqlite.Open(sqlitePath), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", sqlitePath, err)
		}
		return conn, nil
	}

	normalized := NormalizeDSN(dsn)
	log.Info().Str("dsn", MaskDSN(normalized)).Msg("connecting to postgres")
	var conn *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		conn, err = gorm.Open(postgres.Open(normalized), cfg)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("db connection failed, retrying")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after retries: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return conn, nil
}
