package dto

// ── meeting DTOs ──

// CreateMeetingRequest student asks a faculty member for a meeting
type CreateMeetingRequest struct {
	FacultyUsername string `json:"faculty_username" binding:"required"`
	Topic           string `json:"topic"            binding:"required,max=255"`
	MeetingDate     string `json:"meeting_date"     binding:"required,datetime=2006-01-02"`
	MeetingTime     string `json:"meeting_time"     binding:"required,clock"`
}

// MeetingDecisionRequest faculty approves or denies
type MeetingDecisionRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED DENIED"`
}

// MeetingListRequest faculty listing filter
type MeetingListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending all"`
}

// MeetingResponse meeting request with both parties
type MeetingResponse struct {
	ID          string       `json:"id"`
	Topic       string       `json:"topic"`
	Status      string       `json:"status"`
	MeetingDate *string      `json:"meeting_date"`
	MeetingTime *string      `json:"meeting_time"`
	Student     *UserSummary `json:"student,omitempty"`
	Faculty     *UserSummary `json:"faculty,omitempty"`
	CreatedAt   string       `json:"created_at"`
}
