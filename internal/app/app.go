package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	msql "timetrack/internal/adapter/mysql"
	"timetrack/internal/adapter/sqlite"
	"timetrack/internal/adapter/sqlstore"
	"timetrack/internal/config"
	"timetrack/internal/migrate"
	"timetrack/internal/ports"
	"timetrack/internal/prompt"
	"timetrack/internal/usecase"
)

// store is what both backends provide beyond ports.SessionStore.
type store interface {
	ports.SessionStore
	DB() *sql.DB
	Dialect() sqlstore.Dialect
	Close() error
}

// App wires the store, migrations and the reconciler.
type App struct {
	log   *slog.Logger
	store store
	uc    *usecase.SessionReconciler
}

// Options carries the terminal and clock; zero values are not valid.
type Options struct {
	In  io.Reader
	Out io.Writer
	Now func() time.Time
}

func New(ctx context.Context, log *slog.Logger, cfg config.Config, opts Options) (*App, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	st, err := openStore(ctx, log, cfg, opts.Now)
	if err != nil {
		return nil, err
	}
	// Run migrations before the store is used
	if err := migrate.Run(ctx, st.DB(), st.Dialect().Name, log); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	uc := &usecase.SessionReconciler{
		Log:   log,
		Store: st,
		Input: prompt.NewTerminal(opts.In, opts.Out),
		Out:   opts.Out,
		Now:   opts.Now,
	}
	return &App{log: log, store: st, uc: uc}, nil
}

func openStore(ctx context.Context, log *slog.Logger, cfg config.Config, now func() time.Time) (store, error) {
	switch cfg.Store.Driver {
	case "mysql":
		return msql.Open(ctx, cfg.MySQL.DSN, now, log)
	case "sqlite":
		return sqlite.Open(ctx, cfg.SQLite.Path, now, log)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func (a *App) Start(ctx context.Context) error { return a.uc.Start(ctx) }

func (a *App) End(ctx context.Context) error { return a.uc.End(ctx) }

func (a *App) Report(ctx context.Context) error { return a.uc.Report(ctx) }

func (a *App) SinceLast(ctx context.Context) error { return a.uc.SinceLast(ctx) }

func (a *App) Close() error { return a.store.Close() }
