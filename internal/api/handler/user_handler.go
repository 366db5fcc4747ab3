package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/service"
	"github.com/KaushikNaik2/Schedulix/pkg/response"
)

// multipartOverhead allowance for form boundaries and headers around an uploaded file
const multipartOverhead = 64 << 10

// UserHandler profile endpoints
type UserHandler struct {
	userSvc        service.UserService
	maxAvatarBytes int64
}

// NewUserHandler creates a UserHandler
func NewUserHandler(userSvc service.UserService, maxAvatarBytes int64) *UserHandler {
	return &UserHandler{userSvc: userSvc, maxAvatarBytes: maxAvatarBytes}
}

// GetCurrentUser own profile with current availability
// GET /api/v1/users/me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateProfile partial profile update
// PATCH /api/v1/users/me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// ListFaculty every faculty member with current availability
// GET /api/v1/users/faculty
func (h *UserHandler) ListFaculty(c *gin.Context) {
	list, err := h.userSvc.ListFaculty(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// UploadProfilePicture multipart field "file"
// POST /api/v1/users/me/profile-picture
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAvatarBytes+multipartOverhead)
	file, header, err := c.Request.FormFile("file")
	if bodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "profile picture is too large")
		return
	}
	if err != nil {
		response.BadRequest(c, 12002, "upload an image in the \"file\" field")
		return
	}
	defer file.Close()

	if header.Size > h.maxAvatarBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "profile picture is too large")
		return
	}

	user, err := h.userSvc.UploadProfilePicture(c.Request.Context(), userID, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// RemoveProfilePicture clears the profile picture
// DELETE /api/v1/users/me/profile-picture
func (h *UserHandler) RemoveProfilePicture(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.RemoveProfilePicture(c.Request.Context(), userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	case errors.Is(err, service.ErrUnsupportedImage):
		response.Error(c, http.StatusUnsupportedMediaType, 12003, err.Error())
	case errors.Is(err, service.ErrProfilePictureEmpty):
		response.BadRequest(c, 12004, err.Error())
	case errors.Is(err, service.ErrStorageDisabled):
		response.Error(c, http.StatusServiceUnavailable, 12005, err.Error())
	default:
		response.InternalError(c)
	}
}
