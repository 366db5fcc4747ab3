package model

// TimetableEntry one occupied weekly block of a faculty member (timetable_entries)
// Position is the upload order (row-major) and breaks ties between overlapping entries.
type TimetableEntry struct {
	EntryID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	FacultyID string    `gorm:"type:uuid;not null"                             json:"faculty_id"`
	Day       DayOfWeek `gorm:"type:varchar(10);not null"                      json:"day"`
	StartTime string    `gorm:"type:time;not null"                             json:"start_time"`
	EndTime   string    `gorm:"type:time;not null"                             json:"end_time"`
	Subject   string    `gorm:"type:varchar(255);not null"                     json:"subject"`
	Location  *string   `gorm:"type:varchar(100)"                              json:"location,omitempty"`
	Position  int       `gorm:"not null;default:0"                             json:"position"`
	BaseModel
}

// TableName table name
func (TimetableEntry) TableName() string { return "timetable_entries" }

// Covers reports whether minute-of-day m falls in [start, end)
func (e *TimetableEntry) Covers(m int) bool {
	start, ok := ClockMinutes(e.StartTime)
	if !ok {
		return false
	}
	end, ok := ClockMinutes(e.EndTime)
	if !ok {
		return false
	}
	return start <= m && m < end
}
