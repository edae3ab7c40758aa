package timeofday

import (
	"errors"
	"testing"
	"time"
)

func TestParseTwelveHourToTwentyFour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12:00am", "0:00"},
		{"12:00pm", "12:00"},
		{"1:30pm", "13:30"},
		{"9:05AM", "9:05"},
		{"11:59Pm", "23:59"},
		{"07:15am", "7:15"},
		{"5:45pm and some trailing text", "17:45"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			th, err := ParseTwelveHour(tt.in)
			if err != nil {
				t.Fatalf("ParseTwelveHour(%q): %v", tt.in, err)
			}
			if got := ToTwentyFourHour(th).TwentyFour(); got != tt.want {
				t.Errorf("ToTwentyFourHour(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTwelveHourRejects(t *testing.T) {
	for _, in := range []string{"", "DELETE", "13:00", "1:30", "130pm", " 1:30pm", "1:3pm", "13:00pm", "1:60am"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseTwelveHour(in); !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ParseTwelveHour(%q) err = %v, want ErrInvalidFormat", in, err)
			}
			if Valid(in) {
				t.Errorf("Valid(%q) = true", in)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in         string
		twelveHour bool
		want       string
	}{
		{"13:05:00", true, "1:05PM"},
		{"00:10:00", true, "12:10AM"},
		{"12:00:00", true, "12:00PM"},
		{"09:30:12.123456", true, "9:30AM"},
		{"13:05:00", false, "13:05"},
		{"9:5:3", false, "9:05"},
	}
	for _, tt := range tests {
		got, err := FormatTime(tt.in, tt.twelveHour)
		if err != nil {
			t.Fatalf("FormatTime(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("FormatTime(%q, %v) = %q, want %q", tt.in, tt.twelveHour, got, tt.want)
		}
	}
	if _, err := FormatTime("noon", true); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("FormatTime(noon) err = %v, want ErrInvalidFormat", err)
	}
}

func TestDifference(t *testing.T) {
	tests := []struct {
		start, stop string
		want        Duration
	}{
		{"10:00:00", "10:00:30", Duration{0, 0, 30}},
		{"10:00:00", "11:01:05", Duration{1, 1, 5}},
		{"08:15:00", "08:15:00", Duration{}},
		{"00:00:30", "00:00:00", Duration{-1, 59, 30}},
	}
	for _, tt := range tests {
		start, err := Parse(tt.start)
		if err != nil {
			t.Fatal(err)
		}
		stop, err := Parse(tt.stop)
		if err != nil {
			t.Fatal(err)
		}
		got := Difference(start, stop)
		if got != tt.want {
			t.Errorf("Difference(%s, %s) = %+v, want %+v", tt.start, tt.stop, got, tt.want)
		}
		if got.InSeconds() != stop.Seconds()-start.Seconds() {
			t.Errorf("InSeconds() = %d, want %d", got.InSeconds(), stop.Seconds()-start.Seconds())
		}
	}
	if got := (Duration{1, 1, 5}).String(); got != "1:01:05" {
		t.Errorf("String() = %q", got)
	}
}

func TestFormatTotal(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{90*time.Minute + 59*time.Second, "1:30"},
		{27*time.Hour + 5*time.Minute, "27:05"},
		{-30 * time.Minute, "-0:30"},
	}
	for _, tt := range tests {
		if got := FormatTotal(tt.in); got != tt.want {
			t.Errorf("FormatTotal(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOfAndString(t *testing.T) {
	tod := Of(time.Date(2026, 3, 2, 7, 4, 9, 0, time.Local))
	if tod.String() != "07:04:09" {
		t.Errorf("String() = %q", tod.String())
	}
	back, err := Parse(tod.String())
	if err != nil || back != tod {
		t.Errorf("Parse(%q) = %+v, %v", tod.String(), back, err)
	}
}
