package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayOfWeek weekday as stored in timetable_entries.day
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// Days in calendar order, Monday first
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayToDay = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// ParseDayOfWeek matches a day name case-insensitively, ignoring surrounding spaces.
func ParseDayOfWeek(s string) (DayOfWeek, bool) {
	d := DayOfWeek(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", false
	}
	return d, true
}

// DayFromWeekday converts a calendar weekday
func DayFromWeekday(w time.Weekday) (DayOfWeek, bool) {
	d, ok := weekdayToDay[w]
	return d, ok
}

// Valid reports whether d is one of the seven days
func (d DayOfWeek) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Weekday converts back to the calendar weekday
func (d DayOfWeek) Weekday() time.Weekday {
	for w, day := range weekdayToDay {
		if day == d {
			return w
		}
	}
	return -1
}

// Index zero-based position with Monday = 0, -1 when invalid
func (d DayOfWeek) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// Label title-cased name, e.g. "Monday"
func (d DayOfWeek) Label() string {
	if d == "" {
		return ""
	}
	s := strings.ToLower(string(d))
	return strings.ToUpper(s[:1]) + s[1:]
}

// ── time of day ──

// ClockMinutes converts "H:MM", "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Values read back from a TIME column carry seconds, values written by the
// importer do not, so comparisons always go through this.
func ClockMinutes(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[i+1:]
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, false
	}
	for _, p := range parts[:2] {
		if !isDigits(p) {
			return 0, false
		}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatClock renders minutes since midnight as "HH:MM"
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock rewrites a stored time of day as "HH:MM"; unparseable values pass through.
func NormalizeClock(s string) string {
	m, ok := ClockMinutes(s)
	if !ok {
		return s
	}
	return FormatClock(m)
}
