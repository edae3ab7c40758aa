//go:build e2e

package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	msql "timetrack/internal/adapter/mysql"
	"timetrack/internal/migrate"
	"timetrack/internal/prompt"
	"timetrack/internal/usecase"
)

func startMySQL(t *testing.T, ctx context.Context) string {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_DATABASE":      "timetrack",
			"MYSQL_ROOT_PASSWORD": "secret",
			"MYSQL_USER":          "test",
			"MYSQL_PASSWORD":      "pass",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(120 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start mysql container: %v", err)
	}
	t.Cleanup(func() { _ = mysqlC.Terminate(context.Background()) })

	host, err := mysqlC.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := mysqlC.MappedPort(ctx, "3306/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", "test", "pass", host, port.Port(), "timetrack")
}

func TestReconcilerOnMySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	ctx := context.Background()
	dsn := startMySQL(t, ctx)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	// Friday morning.
	clock := time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)
	now := func() time.Time { return clock }

	store, err := msql.Open(ctx, dsn, now, logger)
	if err != nil {
		t.Fatalf("mysql store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	for i := 0; i < 2; i++ {
		if err := migrate.Run(ctx, store.DB(), store.Dialect().Name, logger); err != nil {
			t.Fatalf("migrate %d: %v", i, err)
		}
	}

	reconciler := func(input string) (*usecase.SessionReconciler, *strings.Builder) {
		var out strings.Builder
		return &usecase.SessionReconciler{
			Log:   logger,
			Store: store,
			Input: prompt.NewTerminal(strings.NewReader(input), io.Discard),
			Out:   &out,
			Now:   now,
		}, &out
	}

	r, _ := reconciler("")
	if err := r.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock = clock.Add(95 * time.Minute)
	r, out := reconciler("")
	if err := r.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	if want := "Session Ended\ntodays total time is 1:35\nthis week's total time is 1:35\n"; out.String() != want {
		t.Errorf("end output = %q, want %q", out.String(), want)
	}

	// Start, leave it open, then delete it from the next start.
	r, _ = reconciler("")
	if err := r.Start(ctx); err != nil {
		t.Fatalf("second start: %v", err)
	}
	r, out = reconciler("DELETE\n")
	if err := r.Start(ctx); err != nil {
		t.Fatalf("third start: %v", err)
	}
	if !strings.HasSuffix(out.String(), "Previous start time removed\nA NEW SESSION HAS NOT BEEN STARTED YET\n") {
		t.Errorf("output = %q", out.String())
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("sql open: %v", err)
	}
	defer db.Close()

	var sessions, days int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&sessions); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM days").Scan(&days); err != nil {
		t.Fatalf("count days: %v", err)
	}
	if sessions != 1 || days != 1 {
		t.Fatalf("sessions=%d days=%d, want 1 and 1", sessions, days)
	}

	// Next day: a new day row is created.
	clock = clock.AddDate(0, 0, 1)
	r, out = reconciler("")
	if err := r.Start(ctx); err != nil {
		t.Fatalf("next day start: %v", err)
	}
	if !strings.HasSuffix(out.String(), "This is today's first session\n") {
		t.Errorf("output = %q", out.String())
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM days").Scan(&days); err != nil {
		t.Fatalf("count days: %v", err)
	}
	if days != 2 {
		t.Fatalf("days = %d, want 2", days)
	}
}
