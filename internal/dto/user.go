package dto

// ── user DTOs ──

// UpdateProfileRequest partial profile update; nil fields are left untouched
type UpdateProfileRequest struct {
	FullName       *string `json:"full_name"       binding:"omitempty,max=100"`
	Department     *string `json:"department"      binding:"omitempty,max=100"`
	Subjects       *string `json:"subjects"        binding:"omitempty,max=255"`
	OfficeLocation *string `json:"office_location" binding:"omitempty,max=100"`
}
