package service

import (
	"go.uber.org/zap"

	"github.com/KaushikNaik2/Schedulix/config"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
	"github.com/KaushikNaik2/Schedulix/pkg/jwt"
	"github.com/KaushikNaik2/Schedulix/pkg/mq"
	"github.com/KaushikNaik2/Schedulix/pkg/redis"
	"github.com/KaushikNaik2/Schedulix/pkg/storage"
)

// Service aggregate entry point for every service
type Service struct {
	Auth         AuthService
	User         UserService
	Timetable    TimetableService
	Availability AvailabilityService
	Meeting      MeetingService
	Announcement AnnouncementService
	Notification NotificationService
}

// Deps optional infrastructure; nil members disable the matching feature
type Deps struct {
	Redis     *redis.Client
	Storage   storage.ObjectStorage
	Publisher mq.Publisher
	Clock     Clock
}

// NewService wires every service
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	deps Deps,
	logger *zap.Logger,
) (*Service, error) {
	hours, err := NewBusinessHours(&cfg.Campus)
	if err != nil {
		return nil, err
	}

	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	var blacklist TokenBlacklist
	if deps.Redis != nil {
		blacklist = deps.Redis
	}

	days := NewDayTimetables(repo.Timetable, deps.Redis, cfg.Redis.TimetableTTL, logger)
	availability := NewAvailabilityService(repo, days, hours, clock, logger)
	notifications := NewNotificationService(repo, deps.Publisher, logger)

	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, blacklist, availability, clock, logger),
		User:         NewUserService(repo, availability, deps.Storage, logger),
		Timetable:    NewTimetableService(repo, days, hours, clock, logger),
		Availability: availability,
		Meeting:      NewMeetingService(repo, notifications, logger),
		Announcement: NewAnnouncementService(repo, clock, logger),
		Notification: notifications,
	}, nil
}
