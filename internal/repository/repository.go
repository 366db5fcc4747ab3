package repository

import "gorm.io/gorm"

// Repository aggregate entry point for every repository
type Repository struct {
	User         UserRepository
	Timetable    TimetableRepository
	Meeting      MeetingRepository
	Announcement AnnouncementRepository
	Notification NotificationRepository
}

// NewRepository builds the aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Timetable:    NewTimetableRepo(db),
		Meeting:      NewMeetingRepo(db),
		Announcement: NewAnnouncementRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
