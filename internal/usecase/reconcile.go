package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"timetrack/internal/domain"
	"timetrack/internal/ports"
	"timetrack/internal/prompt"
	"timetrack/internal/timeofday"
)

// SessionReconciler decides what "start" and "end" mean given the most
// recent stored session, and walks the user through repairing it when the
// stored state does not fit the request.
type SessionReconciler struct {
	Log   *slog.Logger
	Store ports.SessionStore
	Input ports.Input
	Out   io.Writer
	Now   func() time.Time
}

func (r *SessionReconciler) check() error {
	if r.Store == nil || r.Input == nil || r.Out == nil {
		return errors.New("usecase not initialized: missing dependencies")
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.Log == nil {
		r.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nil
}

// snapshot reads the latest session once; every decision in a command is
// made against this value.
func (r *SessionReconciler) snapshot(ctx context.Context) (domain.LastSession, bool, error) {
	last, ok, err := r.Store.LastSession(ctx)
	if err != nil {
		return domain.LastSession{}, false, err
	}
	if ok {
		r.Log.Debug("last session",
			slog.Int64("session_id", last.Session.ID),
			slog.String("day", last.Day.Date.Format(time.DateOnly)),
			slog.Bool("open", last.Session.Open()),
		)
	} else {
		r.Log.Debug("no sessions recorded yet")
	}
	return last, ok, nil
}

// Start opens a new session. An unterminated previous session must be
// repaired first; in that case no new session is created.
func (r *SessionReconciler) Start(ctx context.Context) error {
	if err := r.check(); err != nil {
		return err
	}
	last, ok, err := r.snapshot(ctx)
	if err != nil {
		return err
	}

	if ok && last.Session.Open() {
		r.Log.Info("previous session was not ended", slog.Int64("session_id", last.Session.ID))
		if err := r.resolveOpenSession(ctx, last); err != nil {
			return err
		}
		r.say("A NEW SESSION HAS NOT BEEN STARTED YET")
		return nil
	}

	s, err := r.startNewSession(ctx, last, ok)
	if err != nil {
		return err
	}
	r.Log.Info("session started", slog.Int64("session_id", s.ID), slog.Int64("day_id", s.DayID))
	r.say("New Session Started")
	if err := r.Report(ctx); err != nil {
		return err
	}
	r.timeSinceLastSession(last, ok)
	return nil
}

// End closes the open session, or offers to backfill one ending now.
func (r *SessionReconciler) End(ctx context.Context) error {
	if err := r.check(); err != nil {
		return err
	}
	last, ok, err := r.snapshot(ctx)
	if err != nil {
		return err
	}

	if !ok || !last.Session.Open() {
		return r.resolveMissingSession(ctx, last, ok)
	}

	if err := r.Store.CloseSession(ctx, last.Session.ID); err != nil {
		return err
	}
	r.Log.Info("session ended", slog.Int64("session_id", last.Session.ID))
	r.say("Session Ended")
	return r.Report(ctx)
}

// Report prints today's and this week's tracked totals. The week starts on
// Monday.
func (r *SessionReconciler) Report(ctx context.Context) error {
	if err := r.check(); err != nil {
		return err
	}
	today, err := r.Store.TotalDurationOverDays(ctx, 1)
	if err != nil {
		return err
	}
	week, err := r.Store.TotalDurationOverDays(ctx, domain.ISOWeekday(r.Now()))
	if err != nil {
		return err
	}
	r.say("todays total time is %s", timeofday.FormatTotal(today))
	r.say("this week's total time is %s", timeofday.FormatTotal(week))
	return nil
}

// SinceLast prints how long ago the latest session ended.
func (r *SessionReconciler) SinceLast(ctx context.Context) error {
	if err := r.check(); err != nil {
		return err
	}
	last, ok, err := r.snapshot(ctx)
	if err != nil {
		return err
	}
	r.timeSinceLastSession(last, ok)
	return nil
}

func (r *SessionReconciler) timeSinceLastSession(last domain.LastSession, ok bool) {
	now := r.Now()
	switch {
	case !ok || !last.On(now):
		r.say("This is today's first session")
	case last.Session.Open():
		r.say("The last session has not ended")
	default:
		gap := timeofday.Difference(*last.Session.End, timeofday.Of(now))
		r.say("Time between sessions: %s", gap)
	}
}

func (r *SessionReconciler) startNewSession(ctx context.Context, last domain.LastSession, ok bool) (domain.Session, error) {
	if ok && last.On(r.Now()) {
		return r.Store.CreateSession(ctx, last.Day.ID)
	}
	return r.Store.CreateSessionOnNewDay(ctx)
}

func (r *SessionReconciler) resolveOpenSession(ctx context.Context, last domain.LastSession) error {
	lines := r.Input.Lines(
		"The previous session did not end",
		"The last session started at "+last.Session.Start.Format(true),
		strings.Repeat("-", 40),
		"Enter a end time as 00:00(AM/PM) or DELETE to remove this session",
	)
	answer, err := prompt.First(lines, decideOpenSession, func(raw string) {
		r.say("**- COULD NOT UNDERSTAND RESPONSE %s - Try Again", raw)
	})
	if err != nil {
		return err
	}

	if answer.Delete {
		if err := r.Store.DeleteSession(ctx, last.Session.ID); err != nil {
			return err
		}
		r.Log.Info("open session deleted", slog.Int64("session_id", last.Session.ID))
		r.say("Previous start time removed")
		return nil
	}

	if err := r.Store.ChangeEndTime(ctx, last.Session.ID, answer.End); err != nil {
		return err
	}
	r.Log.Info("open session closed", slog.Int64("session_id", last.Session.ID), slog.String("end", answer.End.String()))
	r.say("Last Session updated - %s - %s", last.Session.Start.Format(true), answer.End.Format(true))
	return nil
}

func (r *SessionReconciler) resolveMissingSession(ctx context.Context, last domain.LastSession, ok bool) error {
	r.say("There is no session to end")
	insert, err := prompt.First(
		r.Input.Lines("Would you like to insert a session that ends now? (y/n)"),
		decideYesNo,
		func(string) { r.say(`Enter either "y" or "n"`) },
	)
	if err != nil {
		return err
	}

	if !insert {
		r.say("OK! Goodbye!")
		return r.Report(ctx)
	}

	start, err := prompt.First(
		r.Input.Lines("What should the start time be? enter as 00:00(AM/PM)"),
		decideTime,
		func(raw string) { r.say("COULD NOT VALIDATE TIME - %s - Try again", raw) },
	)
	if err != nil {
		return err
	}
	if err := r.insertSessionEndingNow(ctx, last, ok, start); err != nil {
		return err
	}
	r.say("Session Added!")
	return r.Report(ctx)
}

// insertSessionEndingNow is three separate writes; a failure part way
// leaves a session that started and ended now.
func (r *SessionReconciler) insertSessionEndingNow(ctx context.Context, last domain.LastSession, ok bool, start timeofday.TimeOfDay) error {
	if _, err := r.startNewSession(ctx, last, ok); err != nil {
		return err
	}
	created, ok, err := r.snapshot(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("session vanished after insert")
	}
	if err := r.Store.CloseSession(ctx, created.Session.ID); err != nil {
		return err
	}
	if err := r.Store.ChangeStartTime(ctx, created.Session.ID, start); err != nil {
		return err
	}
	r.Log.Info("session backfilled", slog.Int64("session_id", created.Session.ID), slog.String("start", start.String()))
	return nil
}

func (r *SessionReconciler) say(format string, args ...any) {
	fmt.Fprintf(r.Out, format+"\n", args...)
}
