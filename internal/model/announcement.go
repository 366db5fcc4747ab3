package model

// Announcement faculty broadcast (announcements)
type Announcement struct {
	AnnouncementID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	FacultyID      string `gorm:"type:uuid;not null"                             json:"faculty_id"`
	Title          string `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string `gorm:"type:text;not null"                             json:"message"`
	BaseModel

	Faculty *User `gorm:"foreignKey:FacultyID;references:UserID" json:"faculty,omitempty"`
}

// TableName table name
func (Announcement) TableName() string { return "announcements" }
