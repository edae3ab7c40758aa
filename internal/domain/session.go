package domain

import (
	"time"

	"timetrack/internal/timeofday"
)

// Day groups sessions by calendar date. Date is midnight in the local zone.
type Day struct {
	ID   int64
	Date time.Time
}

// Session is one tracked interval. End is nil while the session is open.
type Session struct {
	ID    int64
	DayID int64
	Start timeofday.TimeOfDay
	End   *timeofday.TimeOfDay
}

// Open reports whether the session has not been ended yet.
func (s Session) Open() bool { return s.End == nil }

// LastSession is the most recently created session joined with its day.
// It is a read-only snapshot taken at the start of a command.
type LastSession struct {
	Day     Day
	Session Session
}

// On reports whether the session belongs to the calendar date of t.
func (l LastSession) On(t time.Time) bool {
	return SameDate(l.Day.Date, t)
}

// Date truncates t to midnight in its own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate compares calendar dates, ignoring the time zone each value
// carries.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}
