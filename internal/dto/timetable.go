package dto

// ── timetable import ──

// ImportTimetableResponse outcome of a best-effort workbook import
type ImportTimetableResponse struct {
	ImportedCount int                      `json:"imported_count"`
	Entries       []TimetableEntryResponse `json:"entries"`
	Skipped       []SkippedRow             `json:"skipped"`
}

// SkippedRow diagnostic for a data row that contributed nothing
type SkippedRow struct {
	Row    int    `json:"row"` // 1-based sheet row
	Reason string `json:"reason"`
}

// ── timetable read ──

// TimetableEntryResponse one timetable block
type TimetableEntryResponse struct {
	ID        string  `json:"id,omitempty"`
	Day       string  `json:"day"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Subject   string  `json:"subject"`
	Location  *string `json:"location"`
}

// TimetableResponse a faculty's full week
type TimetableResponse struct {
	FacultyID string                   `json:"faculty_id"`
	Entries   []TimetableEntryResponse `json:"entries"`
}

// ── availability ──

// AvailabilityQuery explicit availability lookup
type AvailabilityQuery struct {
	FacultyID string `form:"faculty_id" binding:"required,uuid"`
	Day       string `form:"day"        binding:"required,weekday"`
	Time      string `form:"time"       binding:"required,clock"`
}

// AvailabilityResponse resolved status for a faculty member
type AvailabilityResponse struct {
	FacultyID string `json:"faculty_id"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	Location  string `json:"location"`
	Subject   string `json:"subject,omitempty"`
}
