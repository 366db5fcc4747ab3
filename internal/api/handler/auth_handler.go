package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/service"
	"github.com/KaushikNaik2/Schedulix/pkg/response"
)

// AuthHandler authentication endpoints
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register sign-up
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.Created(c, result)
}

// Login issues an access token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the current token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp, ok := MustGetToken(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ForgotPasswordStart returns the user's security question
// POST /api/v1/auth/forgot/start
func (h *AuthHandler) ForgotPasswordStart(c *gin.Context) {
	var req dto.ForgotPasswordStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.authSvc.ForgotPasswordStart(c.Request.Context(), req.Username)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// ForgotPasswordReset verifies the answer and sets a new password
// POST /api/v1/auth/forgot/reset
func (h *AuthHandler) ForgotPasswordReset(c *gin.Context) {
	var req dto.ForgotPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
		return
	}

	if err := h.authSvc.ForgotPasswordReset(c.Request.Context(), &req); err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "invalid username or password")
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, 11002, "username is already taken")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11003, "email is already in use")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 11004, "role must be student or faculty")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11005, "user not found")
	case errors.Is(err, service.ErrSecurityQuestionNotSet):
		response.BadRequest(c, 11006, "no security question set for this user")
	case errors.Is(err, service.ErrSecurityAnswerMismatch):
		response.Unauthorized(c, 11007, "security answer is incorrect")
	default:
		response.InternalError(c)
	}
}
