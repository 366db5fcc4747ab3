package handler

import (
	"github.com/KaushikNaik2/Schedulix/config"
	"github.com/KaushikNaik2/Schedulix/internal/service"
)

// Handler aggregate of every HTTP handler
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Timetable    *TimetableHandler
	Availability *AvailabilityHandler
	Meeting      *MeetingHandler
	Announcement *AnnouncementHandler
	Notification *NotificationHandler
}

// NewHandler builds the aggregate
func NewHandler(svc *service.Service, upload *config.UploadConfig) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User, upload.MaxAvatarBytes),
		Timetable:    NewTimetableHandler(svc.Timetable, upload.MaxTimetableBytes),
		Availability: NewAvailabilityHandler(svc.Availability),
		Meeting:      NewMeetingHandler(svc.Meeting),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Notification: NewNotificationHandler(svc.Notification),
	}
}
