package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDB opens the database named by the config. mysql is the production
// engine; sqlite serves local development and tests.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
