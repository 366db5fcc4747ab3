package dto

// ── auth responses ──

// TokenResponse issued access token
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // seconds
	User        UserResponse `json:"user"`
}

// RegisterResponse created account
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// SecurityQuestionResponse first step of the forgot-password flow
type SecurityQuestionResponse struct {
	SecurityQuestionIndex int `json:"security_question_index"`
}

// ── user responses ──

// UserResponse profile with the resolved availability
type UserResponse struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	FullName        *string `json:"full_name"`
	Department      *string `json:"department"`
	Subjects        *string `json:"subjects"`
	OfficeLocation  *string `json:"office_location"`
	ProfileImageURL *string `json:"profile_image_url"`
	CurrentStatus   string  `json:"current_status"`
	CurrentLocation string  `json:"current_location"`
}

// UserSummary compact user reference embedded in other resources
type UserSummary struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	FullName        *string `json:"full_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// ── path parameters ──

// IDParam resource id in the path
type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}
