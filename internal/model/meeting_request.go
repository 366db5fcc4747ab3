package model

import "time"

const (
	MeetingStatusPending  = "PENDING"
	MeetingStatusApproved = "APPROVED"
	MeetingStatusDenied   = "DENIED"
)

// MeetingRequest student → faculty meeting request (meeting_requests)
type MeetingRequest struct {
	RequestID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	StudentID   string     `gorm:"type:uuid;not null"                             json:"student_id"`
	FacultyID   string     `gorm:"type:uuid;not null"                             json:"faculty_id"`
	Topic       string     `gorm:"type:varchar(255);not null"                     json:"topic"`
	Status      string     `gorm:"type:varchar(10);not null;default:'PENDING'"    json:"status"`
	MeetingDate *time.Time `gorm:"type:date"                                      json:"meeting_date,omitempty"`
	MeetingTime *string    `gorm:"type:time"                                      json:"meeting_time,omitempty"`
	BaseModel

	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	Faculty *User `gorm:"foreignKey:FacultyID;references:UserID" json:"faculty,omitempty"`
}

// TableName table name
func (MeetingRequest) TableName() string { return "meeting_requests" }
