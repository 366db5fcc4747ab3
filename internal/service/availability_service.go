package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
)

// ── availability labels ──

const (
	StatusOffline   = "Offline"
	StatusInClass   = "In Class"
	StatusAvailable = "Available"
	StatusUnknown   = "Status Unknown"

	LocationNone     = "N/A"
	LocationOnCampus = "On Campus"
	LocationCabin    = "Cabin"

	defaultSubject = "Class"
)

// Availability resolved status of a faculty member
type Availability struct {
	Status   string
	Location string
	Subject  string // set only when In Class
}

// ErrInvalidClock the queried time is not H:mm
var ErrInvalidClock = errors.New("time must be H:mm")

var unknownAvailability = Availability{Status: StatusUnknown, Location: LocationNone}

// AvailabilityService resolves where a faculty member is
type AvailabilityService interface {
	// Check resolves availability at an explicit day and time (H:mm).
	// Returns ErrUserNotFound when no faculty has that id; never fails otherwise.
	Check(ctx context.Context, facultyID string, day model.DayOfWeek, clock string) (*dto.AvailabilityResponse, error)
	// Current resolves availability for user right now. Never fails.
	Current(ctx context.Context, user *model.User) Availability
}

type availabilityService struct {
	repo   *repository.Repository
	days   *DayTimetables
	hours  *BusinessHours
	clock  Clock
	logger *zap.Logger
}

// NewAvailabilityService creates an AvailabilityService
func NewAvailabilityService(repo *repository.Repository, days *DayTimetables, hours *BusinessHours, clock Clock, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, days: days, hours: hours, clock: clock, logger: logger}
}

func (s *availabilityService) Check(ctx context.Context, facultyID string, day model.DayOfWeek, clock string) (*dto.AvailabilityResponse, error) {
	minute, ok := model.ClockMinutes(clock)
	if !ok {
		return nil, ErrInvalidClock
	}

	user, err := s.repo.User.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("availability: load faculty failed", zap.String("faculty_id", facultyID), zap.Error(err))
		return s.response(facultyID, day, minute, unknownAvailability), nil
	}
	if !user.IsFaculty() {
		return nil, ErrUserNotFound
	}

	return s.response(facultyID, day, minute, s.resolve(ctx, user, day, minute)), nil
}

func (s *availabilityService) Current(ctx context.Context, user *model.User) Availability {
	day, minute := s.hours.Local(s.clock.Now())
	return s.resolve(ctx, user, day, minute)
}

// resolve applies, in order: opening hours, day validity, the timetable, then the office fallback
func (s *availabilityService) resolve(ctx context.Context, user *model.User, day model.DayOfWeek, minute int) (result Availability) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("availability: resolution panicked",
				zap.String("user_id", user.UserID),
				zap.Any("panic", rec),
			)
			result = unknownAvailability
		}
	}()

	if !s.hours.IsOpen(day, minute) {
		return Availability{Status: StatusOffline, Location: LocationNone}
	}
	if !day.Valid() {
		return Availability{Status: StatusOffline, Location: LocationNone}
	}

	entries, err := s.days.Load(ctx, user.UserID, day)
	if err != nil {
		s.logger.Error("availability: load timetable failed",
			zap.String("user_id", user.UserID),
			zap.String("day", string(day)),
			zap.Error(err),
		)
		return unknownAvailability
	}

	for i := range entries {
		if !entries[i].Covers(minute) {
			continue
		}
		location := LocationOnCampus
		if entries[i].Location != nil && *entries[i].Location != "" {
			location = *entries[i].Location
		}
		subject := entries[i].Subject
		if subject == "" {
			subject = defaultSubject
		}
		return Availability{Status: StatusInClass, Location: location, Subject: subject}
	}

	location := LocationCabin
	if user.OfficeLocation != nil && *user.OfficeLocation != "" {
		location = *user.OfficeLocation
	}
	return Availability{Status: StatusAvailable, Location: location}
}

func (s *availabilityService) response(facultyID string, day model.DayOfWeek, minute int, a Availability) *dto.AvailabilityResponse {
	return &dto.AvailabilityResponse{
		FacultyID: facultyID,
		Day:       string(day),
		Time:      model.FormatClock(minute),
		Status:    a.Status,
		Location:  a.Location,
		Subject:   a.Subject,
	}
}
