// Package timeofday converts between 12-hour input text, stored clock values
// and second counts.
package timeofday

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when text is not a usable time of day.
var ErrInvalidFormat = errors.New("timeofday: invalid format")

// twelveHourPattern only anchors the start: "9:30pm please" is accepted.
var twelveHourPattern = regexp.MustCompile(`(?i)^(\d\d?):(\d\d)(am|pm)`)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TwelveHour is user input such as "1:30pm".
type TwelveHour struct {
	Hour   int
	Minute int
	PM     bool
}

// Valid reports whether a string would be accepted by ParseTwelveHour.
func Valid(text string) bool {
	_, err := ParseTwelveHour(text)
	return err == nil
}

// ParseTwelveHour parses D?D:MM(am|pm), case-insensitively.
func ParseTwelveHour(text string) (TwelveHour, error) {
	m := twelveHourPattern.FindStringSubmatch(text)
	if m == nil {
		return TwelveHour{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 12 || minute > 59 {
		return TwelveHour{}, fmt.Errorf("%w: %q out of range", ErrInvalidFormat, text)
	}
	return TwelveHour{Hour: hour, Minute: minute, PM: strings.EqualFold(m[3], "pm")}, nil
}

// ToTwentyFourHour maps 12am to 0 and 12pm to 12.
func ToTwentyFourHour(t TwelveHour) TimeOfDay {
	hour := t.Hour % 12
	if t.PM {
		hour += 12
	}
	return TimeOfDay{Hour: hour, Minute: t.Minute}
}

// Of returns the wall-clock part of t.
func Of(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Parse reads a stored clock value: "HH:MM:SS", "HH:MM:SS.ffffff", "H:M:S"
// or "H:MM".
func Parse(value string) (TimeOfDay, error) {
	value, _, _ = strings.Cut(strings.TrimSpace(value), ".")
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
		}
		fields[i] = n
	}
	return TimeOfDay{Hour: fields[0], Minute: fields[1], Second: fields[2]}, nil
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return (t.Hour*60+t.Minute)*60 + t.Second
}

// String renders the storage form, HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// TwentyFour renders H:MM.
func (t TimeOfDay) TwentyFour() string {
	return fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
}

// Format drops seconds. In 12-hour mode hour 0 shows as 12 and a meridiem
// suffix is appended.
func (t TimeOfDay) Format(twelveHour bool) string {
	if !twelveHour {
		return t.TwentyFour()
	}
	suffix := "AM"
	if t.Hour >= 12 {
		suffix = "PM"
	}
	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d%s", hour, t.Minute, suffix)
}

// FormatTime parses a stored value and renders it with Format.
func FormatTime(value string, twelveHour bool) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return t.Format(twelveHour), nil
}
