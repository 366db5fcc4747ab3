package service

import (
	"fmt"
	"time"

	"github.com/KaushikNaik2/Schedulix/config"
	"github.com/KaushikNaik2/Schedulix/internal/model"
)

// Clock source of the current time
type Clock interface {
	Now() time.Time
}

// SystemClock wall clock
type SystemClock struct{}

// Now returns time.Now
func (SystemClock) Now() time.Time { return time.Now() }

// BusinessHours institution opening window. Open is inclusive, close exclusive.
type BusinessHours struct {
	open     int // minutes since midnight
	close    int
	closed   map[model.DayOfWeek]bool
	location *time.Location
}

// NewBusinessHours builds the policy from campus configuration
func NewBusinessHours(cfg *config.CampusConfig) (*BusinessHours, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load campus timezone: %w", err)
	}
	open, err := parseClock(cfg.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("campus open time: %w", err)
	}
	closing, err := parseClock(cfg.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("campus close time: %w", err)
	}
	if open >= closing {
		return nil, fmt.Errorf("campus open time must be before close time")
	}

	closed := make(map[model.DayOfWeek]bool, len(cfg.ClosedDays))
	for _, name := range cfg.ClosedDays {
		day, ok := model.ParseDayOfWeek(name)
		if !ok {
			return nil, fmt.Errorf("unknown closed day %q", name)
		}
		closed[day] = true
	}

	return &BusinessHours{open: open, close: closing, closed: closed, location: loc}, nil
}

// IsOpen reports whether the institution is open on day at minute-of-day m
func (b *BusinessHours) IsOpen(day model.DayOfWeek, m int) bool {
	if !day.Valid() || b.closed[day] {
		return false
	}
	return m >= b.open && m < b.close
}

// IsOpenAt evaluates t in the institution timezone
func (b *BusinessHours) IsOpenAt(t time.Time) bool {
	day, m := b.Local(t)
	return b.IsOpen(day, m)
}

// Local converts t into the institution's day and minute-of-day
func (b *BusinessHours) Local(t time.Time) (model.DayOfWeek, int) {
	local := t.In(b.location)
	day, _ := model.DayFromWeekday(local.Weekday())
	return day, local.Hour()*60 + local.Minute()
}

// Location institution timezone
func (b *BusinessHours) Location() *time.Location {
	return b.location
}
