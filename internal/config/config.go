package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-driven configuration.
type Config struct {
	Store  StoreConfig
	MySQL  MySQLConfig
	SQLite SQLiteConfig
	Log    LogConfig
}

type StoreConfig struct {
	Driver string `env:"TIMETRACK_STORE" envDefault:"sqlite"` // sqlite or mysql
}

type MySQLConfig struct {
	DSN string `env:"MYSQL_DSN"` // e.g., user:pass@tcp(host:3306)/timetrack?parseTime=true
}

type SQLiteConfig struct {
	Path string `env:"TIMETRACK_SQLITE_PATH"` // default: $XDG_DATA_HOME/timetrack/timetrack.db
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"warn"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Store.Driver {
	case "mysql":
		if cfg.MySQL.DSN == "" {
			return cfg, errors.New("MYSQL_DSN is required when TIMETRACK_STORE=mysql")
		}
	case "sqlite":
		if cfg.SQLite.Path == "" {
			p, err := defaultSQLitePath()
			if err != nil {
				return cfg, err
			}
			cfg.SQLite.Path = p
		}
	default:
		return cfg, fmt.Errorf("TIMETRACK_STORE must be sqlite or mysql, got %q", cfg.Store.Driver)
	}
	return cfg, nil
}

func defaultSQLitePath() (string, error) {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "timetrack", "timetrack.db"), nil
}
