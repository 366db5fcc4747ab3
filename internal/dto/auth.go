package dto

// ── auth DTOs ──

// LoginRequest login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest sign-up payload
type RegisterRequest struct {
	Username              string `json:"username"                binding:"required,username"`
	Email                 string `json:"email"                   binding:"required,email,max=255"`
	Password              string `json:"password"                binding:"required,password"`
	Role                  string `json:"role"                    binding:"required,oneof=student faculty STUDENT FACULTY"`
	FullName              string `json:"full_name"               binding:"omitempty,max=100"`
	Department            string `json:"department"              binding:"omitempty,max=100"`
	SecurityQuestionIndex int    `json:"security_question_index" binding:"required,min=1,max=10"`
	SecurityAnswer        string `json:"security_answer"         binding:"required,max=100"`
}

// ForgotPasswordStartRequest asks for the security question of a user
type ForgotPasswordStartRequest struct {
	Username string `json:"username" binding:"required"`
}

// ForgotPasswordResetRequest answers the security question and sets a new password
type ForgotPasswordResetRequest struct {
	Username       string `json:"username"        binding:"required"`
	SecurityAnswer string `json:"security_answer" binding:"required"`
	NewPassword    string `json:"new_password"    binding:"required,password"`
}
