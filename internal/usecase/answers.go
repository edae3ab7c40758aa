package usecase

import (
	"strings"

	"timetrack/internal/timeofday"
)

// openSessionAnswer is the reply to an unterminated previous session: either
// delete it or close it at End.
type openSessionAnswer struct {
	Delete bool
	End    timeofday.TimeOfDay
}

func decideOpenSession(raw string) (openSessionAnswer, bool) {
	if strings.EqualFold(strings.TrimSpace(raw), "DELETE") {
		return openSessionAnswer{Delete: true}, true
	}
	t, ok := decideTime(raw)
	return openSessionAnswer{End: t}, ok
}

// decideYesNo looks only at the first letter, so "yes" and "Nope" count.
func decideYesNo(raw string) (bool, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return false, false
	}
	switch raw[0] {
	case 'y':
		return true, true
	case 'n':
		return false, true
	}
	return false, false
}

func decideTime(raw string) (timeofday.TimeOfDay, bool) {
	th, err := timeofday.ParseTwelveHour(raw)
	if err != nil {
		return timeofday.TimeOfDay{}, false
	}
	return timeofday.ToTwentyFourHour(th), true
}
