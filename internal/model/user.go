package model

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

// User account table (users)
type User struct {
	UserID                string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username              string  `gorm:"type:varchar(20);not null"                      json:"username"`
	Email                 string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash          string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role                  string  `gorm:"type:varchar(20);not null"                      json:"role"`
	FullName              *string `gorm:"type:varchar(100)"                              json:"full_name,omitempty"`
	Department            *string `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	Subjects              *string `gorm:"type:varchar(255)"                              json:"subjects,omitempty"`
	OfficeLocation        *string `gorm:"type:varchar(100)"                              json:"office_location,omitempty"`
	ProfileImageURL       *string `gorm:"type:varchar(500)"                              json:"profile_image_url,omitempty"`
	SecurityQuestionIndex int     `gorm:"type:smallint;not null;default:0"               json:"-"`
	SecurityAnswerHash    string  `gorm:"type:varchar(255)"                              json:"-"`
	SoftDeleteModel
}

// TableName table name
func (User) TableName() string { return "users" }

// IsFaculty role check
func (u *User) IsFaculty() bool { return u.Role == RoleFaculty }
