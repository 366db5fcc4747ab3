package model

import (
	"testing"
	"time"
)

func TestParseDayOfWeek(t *testing.T) {
	tests := []struct {
		in   string
		want DayOfWeek
		ok   bool
	}{
		{"Monday", Monday, true},
		{"  friday ", Friday, true},
		{"SUNDAY", Sunday, true},
		{"Mon", "", false},
		{"Time Slot", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDayOfWeek(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseDayOfWeek(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDayWeekdayRoundTrip(t *testing.T) {
	for _, d := range Days {
		got, ok := DayFromWeekday(d.Weekday())
		if !ok || got != d {
			t.Errorf("round trip of %s gave %s", d, got)
		}
	}
	if d, _ := DayFromWeekday(time.Saturday); d != Saturday {
		t.Errorf("expected SATURDAY, got %s", d)
	}
}

func TestDayLabelAndIndex(t *testing.T) {
	if Wednesday.Label() != "Wednesday" {
		t.Errorf("unexpected label %q", Wednesday.Label())
	}
	if Monday.Index() != 0 || Sunday.Index() != 6 {
		t.Error("Monday must be first and Sunday last")
	}
	if DayOfWeek("FUNDAY").Index() != -1 {
		t.Error("invalid day must have index -1")
	}
}

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"9:30", 570, true},
		{"09:30", 570, true},
		{"09:30:00", 570, true},
		{"0000-01-01T17:00:00Z", 1020, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:5", 0, false},
		{"+9:30", 0, false},
		{"nine", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ClockMinutes(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ClockMinutes(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	if got := NormalizeClock("08:10:00"); got != "08:10" {
		t.Errorf("expected 08:10, got %s", got)
	}
	if got := NormalizeClock("garbage"); got != "garbage" {
		t.Errorf("unparseable value must pass through, got %s", got)
	}
}
