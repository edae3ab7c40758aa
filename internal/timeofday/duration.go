package timeofday

import (
	"fmt"
	"time"
)

// Duration is an elapsed time split into hours, minutes and seconds.
// Minutes and seconds are always in [0, 59]; a negative span carries its sign
// in Hours only, so 30 seconds before midnight is -1:59:30.
type Duration struct {
	Hours   int
	Minutes int
	Seconds int
}

// Difference returns stop - start. It does not wrap around midnight.
func Difference(start, stop TimeOfDay) Duration {
	return FromSeconds(stop.Seconds() - start.Seconds())
}

// FromSeconds splits a second count with floored division.
func FromSeconds(total int) Duration {
	minutes, seconds := divmod(total, 60)
	hours, minutes := divmod(minutes, 60)
	return Duration{Hours: hours, Minutes: minutes, Seconds: seconds}
}

// InSeconds is the inverse of FromSeconds.
func (d Duration) InSeconds() int {
	return (d.Hours*60+d.Minutes)*60 + d.Seconds
}

// String renders H:MM:SS.
func (d Duration) String() string {
	return fmt.Sprintf("%d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}

// FormatTotal renders a tracked total as H:MM, dropping seconds. Hours are
// not capped at 24.
func FormatTotal(d time.Duration) string {
	sign := ""
	secs := int(d / time.Second)
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	return fmt.Sprintf("%s%d:%02d", sign, secs/3600, secs%3600/60)
}

func divmod(a, b int) (int, int) {
	q, r := a/b, a%b
	if r != 0 && (r < 0) != (b < 0) {
		q--
		r += b
	}
	return q, r
}
