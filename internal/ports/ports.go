package ports

import (
	"context"
	"iter"
	"time"

	"timetrack/internal/domain"
	"timetrack/internal/timeofday"
)

// SessionStore persists days and sessions. Implementations take "now" and
// "today" from their own clock.
type SessionStore interface {
	// LastSession returns the newest session and its day; ok is false when
	// nothing has been recorded yet.
	LastSession(ctx context.Context) (last domain.LastSession, ok bool, err error)
	CreateSession(ctx context.Context, dayID int64) (domain.Session, error)
	CreateSessionOnNewDay(ctx context.Context) (domain.Session, error)
	CloseSession(ctx context.Context, sessionID int64) error
	ChangeEndTime(ctx context.Context, sessionID int64, end timeofday.TimeOfDay) error
	ChangeStartTime(ctx context.Context, sessionID int64, start timeofday.TimeOfDay) error
	DeleteSession(ctx context.Context, sessionID int64) error
	// TotalDurationOverDays sums closed sessions on the trailing n days,
	// today included. Zero when none match.
	TotalDurationOverDays(ctx context.Context, n int) (time.Duration, error)
}

// Input supplies candidate answers to a question. Each call to the returned
// sequence shows the question before every line it yields.
type Input interface {
	Lines(question ...string) iter.Seq[string]
}
