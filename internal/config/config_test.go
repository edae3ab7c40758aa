package config

import (
	"os"
	"path/filepath"
	"testing"
)

// unset clears keys for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unset(t, "TIMETRACK_STORE", "TIMETRACK_SQLITE_PATH", "LOG_LEVEL")
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if want := filepath.Join("/data", "timetrack", "timetrack.db"); cfg.SQLite.Path != want {
		t.Errorf("path = %q, want %q", cfg.SQLite.Path, want)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
}

func TestLoadMySQL(t *testing.T) {
	t.Setenv("TIMETRACK_STORE", "mysql")
	t.Setenv("MYSQL_DSN", "u:p@tcp(db:3306)/tt?parseTime=true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MySQL.DSN != "u:p@tcp(db:3306)/tt?parseTime=true" {
		t.Errorf("dsn = %q", cfg.MySQL.DSN)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, driver, dsn string
	}{
		{"mysql without dsn", "mysql", ""},
		{"unknown driver", "postgres", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TIMETRACK_STORE", tt.driver)
			t.Setenv("MYSQL_DSN", tt.dsn)
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
