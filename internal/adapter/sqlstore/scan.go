package sqlstore

import (
	"fmt"
	"time"

	"timetrack/internal/timeofday"
)

// dateValue scans a DATE column. go-sql-driver/mysql yields time.Time with
// parseTime=true and []byte without it; SQLite stores text.
type dateValue struct {
	y int
	m time.Month
	d int
}

func (v *dateValue) Scan(src any) error {
	switch x := src.(type) {
	case time.Time:
		v.y, v.m, v.d = x.Date()
		return nil
	case []byte:
		return v.parse(string(x))
	case string:
		return v.parse(x)
	}
	return fmt.Errorf("cannot scan %T into a date", src)
}

func (v *dateValue) parse(s string) error {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	v.y, v.m, v.d = t.Date()
	return nil
}

// In returns midnight of the scanned date in loc.
func (v dateValue) In(loc *time.Location) time.Time {
	return time.Date(v.y, v.m, v.d, 0, 0, 0, 0, loc)
}

// clockValue scans a nullable TIME column.
type clockValue struct {
	Time  timeofday.TimeOfDay
	Valid bool
}

func (v *clockValue) Scan(src any) error {
	var err error
	switch x := src.(type) {
	case nil:
		v.Time, v.Valid = timeofday.TimeOfDay{}, false
		return nil
	case time.Time:
		v.Time = timeofday.Of(x)
	case []byte:
		v.Time, err = timeofday.Parse(string(x))
	case string:
		v.Time, err = timeofday.Parse(x)
	default:
		return fmt.Errorf("cannot scan %T into a time of day", src)
	}
	v.Valid = err == nil
	return err
}
