package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/service"
	"github.com/KaushikNaik2/Schedulix/pkg/response"
)

// AnnouncementHandler announcement endpoints
type AnnouncementHandler struct {
	svc service.AnnouncementService
}

// NewAnnouncementHandler creates an AnnouncementHandler
func NewAnnouncementHandler(svc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc}
}

// Create POST /api/v1/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleAnnouncementError(c, err)
		return
	}
	response.Created(c, resp)
}

// List GET /api/v1/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Update PUT /api/v1/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, 18001, "announcement not found")
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleAnnouncementError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, 18001, "announcement not found")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		handleAnnouncementError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleAnnouncementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAnnouncementNotFound):
		response.NotFound(c, 18001, err.Error())
	case errors.Is(err, service.ErrAnnouncementNotOwner):
		response.Forbidden(c, 18002, err.Error())
	case errors.Is(err, service.ErrAnnouncementEditWindowClosed):
		response.Forbidden(c, 18003, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 10002, "not authenticated")
	default:
		response.InternalError(c)
	}
}
