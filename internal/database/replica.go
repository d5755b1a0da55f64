package database

import (
	"fmt"
	"log/slog"

	"skillswap/internal/config"
	"skillswap/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// readDB is the optional read-replica connection. Nil when no replica is configured.
var readDB *gorm.DB

// GetReadDB returns the read-replica connection, or nil when reads should use the primary.
func GetReadDB() *gorm.DB {
	return readDB
}

// connectReadReplica opens a read-only connection when DB_READ_HOST is set.
// Failures are logged and the replica is skipped; reads fall back to the primary.
func connectReadReplica(cfg *config.Config) {
	if cfg.DBReadHost == "" {
		return
	}

	dsn := buildDSN(cfg.DBReadHost, cfg.DBReadPort, cfg.DBReadUser, cfg.DBReadPassword, cfg.DBName, cfg.DBSSLMode)
	replica, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		middleware.Logger.Warn("Read replica connection failed, falling back to primary",
			slog.String("host", cfg.DBReadHost),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := configurePool(replica, cfg); err != nil {
		middleware.Logger.Warn("Read replica pool configuration failed",
			slog.String("error", fmt.Sprintf("%v", err)),
		)
	}

	readDB = replica
	middleware.Logger.Info("Read replica connected", slog.String("host", cfg.DBReadHost))
}
