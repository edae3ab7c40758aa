package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"timetrack/internal/adapter/sqlstore"
)

// Store implements ports.SessionStore on MySQL.
type Store struct {
	*sqlstore.Store
	db  *sql.DB
	log *slog.Logger
}

// Open opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/timetrack?parseTime=true
func Open(ctx context.Context, dsn string, now func() time.Time, log *slog.Logger) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	// One command per process; a small pool is plenty.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug("mysql store opened")
	return &Store{Store: sqlstore.New(db, sqlstore.MySQL, now, log), db: db, log: log}, nil
}

// DB exposes the handle for migrations.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Dialect() sqlstore.Dialect { return sqlstore.MySQL }

func (s *Store) Close() error { return s.db.Close() }
