package model

// Notification in-app message (notifications)
type Notification struct {
	NotificationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string `gorm:"type:uuid;not null"                             json:"user_id"`
	Message        string `gorm:"type:text;not null"                             json:"message"`
	IsRead         bool   `gorm:"not null;default:false"                         json:"is_read"`
	BaseModel
}

// TableName table name
func (Notification) TableName() string { return "notifications" }
