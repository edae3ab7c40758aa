// Package sqlstore implements ports.SessionStore over database/sql. The
// MySQL and SQLite adapters open the connection and pick a Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"timetrack/internal/domain"
	"timetrack/internal/timeofday"
)

// ErrSessionNotFound is wrapped in a StorageError when a delete matches no row.
var ErrSessionNotFound = errors.New("session not found")

// StorageError reports which store operation failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func fail(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Dialect holds the SQL that differs between backends.
type Dialect struct {
	Name string
	// elapsed is an expression giving s.end_time - s.start_time in seconds.
	elapsed string
}

var (
	MySQL  = Dialect{Name: "mysql", elapsed: "TIME_TO_SEC(s.end_time) - TIME_TO_SEC(s.start_time)"}
	SQLite = Dialect{Name: "sqlite", elapsed: "CAST(strftime('%s', s.end_time) AS INTEGER) - CAST(strftime('%s', s.start_time) AS INTEGER)"}
)

// Store runs the session queries. Dates and times written by the store come
// from now, in its location.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
	log     *slog.Logger
}

func New(db *sql.DB, dialect Dialect, now func() time.Time, log *slog.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, dialect: dialect, now: now, log: log}
}

// LastSession returns the session with the highest id joined with its day.
func (s *Store) LastSession(ctx context.Context) (domain.LastSession, bool, error) {
	const q = `
SELECT d.day_id, d.day, s.session_id, s.start_time, s.end_time
  FROM days d
  JOIN sessions s ON d.day_id = s.day_id
 ORDER BY s.session_id DESC
 LIMIT 1`
	var (
		last       domain.LastSession
		day        dateValue
		start, end clockValue
	)
	err := s.db.QueryRowContext(ctx, q).Scan(&last.Day.ID, &day, &last.Session.ID, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LastSession{}, false, nil
	}
	if err != nil {
		return domain.LastSession{}, false, fail("last session", err)
	}
	if !start.Valid {
		return domain.LastSession{}, false, fail("last session", fmt.Errorf("session %d has no start time", last.Session.ID))
	}
	last.Day.Date = day.In(s.now().Location())
	last.Session.DayID = last.Day.ID
	last.Session.Start = start.Time
	if end.Valid {
		t := end.Time
		last.Session.End = &t
	}
	return last, true, nil
}

// CreateSession opens a session starting now under dayID.
func (s *Store) CreateSession(ctx context.Context, dayID int64) (domain.Session, error) {
	sess, err := insertSession(ctx, s.db, dayID, timeofday.Of(s.now()))
	if err != nil {
		return domain.Session{}, fail("create session", err)
	}
	s.log.Debug("session inserted", slog.Int64("session_id", sess.ID), slog.Int64("day_id", dayID))
	return sess, nil
}

// CreateSessionOnNewDay records today's day, reusing the row if the date is
// already present, and opens a session under it.
func (s *Store) CreateSessionOnNewDay(ctx context.Context) (domain.Session, error) {
	now := s.now()
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return domain.Session{}, fail("create day", err)
	}
	dayID, err := ensureDay(ctx, tx, domain.Date(now))
	if err != nil {
		tx.Rollback()
		return domain.Session{}, fail("create day", err)
	}
	sess, err := insertSession(ctx, tx, dayID, timeofday.Of(now))
	if err != nil {
		tx.Rollback()
		return domain.Session{}, fail("create session", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Session{}, fail("create session", err)
	}
	s.log.Debug("session inserted on new day", slog.Int64("session_id", sess.ID), slog.Int64("day_id", dayID))
	return sess, nil
}

// CloseSession sets the end time to now.
func (s *Store) CloseSession(ctx context.Context, sessionID int64) error {
	return fail("close session", s.setTime(ctx, "end_time", sessionID, timeofday.Of(s.now())))
}

func (s *Store) ChangeEndTime(ctx context.Context, sessionID int64, end timeofday.TimeOfDay) error {
	return fail("change end time", s.setTime(ctx, "end_time", sessionID, end))
}

func (s *Store) ChangeStartTime(ctx context.Context, sessionID int64, start timeofday.TimeOfDay) error {
	return fail("change start time", s.setTime(ctx, "start_time", sessionID, start))
}

func (s *Store) DeleteSession(ctx context.Context, sessionID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fail("delete session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fail("delete session", err)
	}
	if n == 0 {
		return fail("delete session", fmt.Errorf("%w: %d", ErrSessionNotFound, sessionID))
	}
	s.log.Debug("session deleted", slog.Int64("session_id", sessionID))
	return nil
}

// TotalDurationOverDays sums closed sessions whose day is after today - n.
func (s *Store) TotalDurationOverDays(ctx context.Context, n int) (time.Duration, error) {
	q := `
SELECT COALESCE(SUM(` + s.dialect.elapsed + `), 0)
  FROM sessions s
  JOIN days d ON d.day_id = s.day_id
 WHERE d.day > ?
   AND s.end_time IS NOT NULL`
	cutoff := domain.Date(s.now()).AddDate(0, 0, -n).Format(time.DateOnly)
	var secs int64
	if err := s.db.QueryRowContext(ctx, q, cutoff).Scan(&secs); err != nil {
		return 0, fail("total duration", err)
	}
	s.log.Debug("total duration", slog.Int("days", n), slog.Int64("seconds", secs))
	return time.Duration(secs) * time.Second, nil
}

// setTime only ever receives the literal column names above.
func (s *Store) setTime(ctx context.Context, column string, sessionID int64, t timeofday.TimeOfDay) error {
	_, err := s.db.ExecContext(ctx, "UPDATE sessions SET "+column+" = ? WHERE session_id = ?", t.String(), sessionID)
	if err == nil {
		s.log.Debug("session updated", slog.String("column", column), slog.Int64("session_id", sessionID), slog.String("value", t.String()))
	}
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func ensureDay(ctx context.Context, db execer, date time.Time) (int64, error) {
	day := date.Format(time.DateOnly)
	var id int64
	err := db.QueryRowContext(ctx, "SELECT day_id FROM days WHERE day = ?", day).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := db.ExecContext(ctx, "INSERT INTO days (day) VALUES (?)", day)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func insertSession(ctx context.Context, db execer, dayID int64, start timeofday.TimeOfDay) (domain.Session, error) {
	res, err := db.ExecContext(ctx, "INSERT INTO sessions (day_id, start_time) VALUES (?, ?)", dayID, start.String())
	if err != nil {
		return domain.Session{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{ID: id, DayID: dayID, Start: start}, nil
}
