package dto

// ── announcement DTOs ──

// CreateAnnouncementRequest new announcement
type CreateAnnouncementRequest struct {
	Title   string `json:"title"   binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

// UpdateAnnouncementRequest replacement title/message
type UpdateAnnouncementRequest struct {
	Title   string `json:"title"   binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

// AnnouncementResponse announcement with its author
type AnnouncementResponse struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Faculty   *UserSummary `json:"faculty,omitempty"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}
