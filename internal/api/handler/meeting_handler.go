package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/service"
	"github.com/KaushikNaik2/Schedulix/pkg/response"
)

// MeetingHandler meeting request endpoints
type MeetingHandler struct {
	svc service.MeetingService
}

// NewMeetingHandler creates a MeetingHandler
func NewMeetingHandler(svc service.MeetingService) *MeetingHandler {
	return &MeetingHandler{svc: svc}
}

// Create student requests a meeting
// POST /api/v1/meetings
func (h *MeetingHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleMeetingError(c, err)
		return
	}
	response.Created(c, resp)
}

// ListMine student's own requests, newest first
// GET /api/v1/meetings/mine
func (h *MeetingHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListForStudent(c.Request.Context(), userID)
	if err != nil {
		handleMeetingError(c, err)
		return
	}
	response.OK(c, list)
}

// Delete student withdraws a request
// DELETE /api/v1/meetings/:id
func (h *MeetingHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, 17001, "meeting request not found")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		handleMeetingError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListForFaculty requests addressed to the caller
// GET /api/v1/meetings/faculty?status=pending|all
func (h *MeetingHandler) ListForFaculty(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.MeetingListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "status must be pending or all")
		return
	}

	list, err := h.svc.ListForFaculty(c.Request.Context(), userID, q.Status != "all")
	if err != nil {
		handleMeetingError(c, err)
		return
	}
	response.OK(c, list)
}

// Decide faculty approves or denies
// PATCH /api/v1/meetings/:id/decision
func (h *MeetingHandler) Decide(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, 17001, "meeting request not found")
	if !ok {
		return
	}

	var req dto.MeetingDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "status must be APPROVED or DENIED")
		return
	}

	resp, err := h.svc.Decide(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		handleMeetingError(c, err)
		return
	}
	response.OK(c, resp)
}

func handleMeetingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMeetingNotFound):
		response.NotFound(c, 17001, err.Error())
	case errors.Is(err, service.ErrMeetingNotOwner):
		response.Forbidden(c, 17002, err.Error())
	case errors.Is(err, service.ErrMeetingFacultyNotFound):
		response.NotFound(c, 17003, err.Error())
	case errors.Is(err, service.ErrMeetingInvalidSchedule):
		response.BadRequest(c, 17004, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 10002, "not authenticated")
	default:
		response.InternalError(c)
	}
}
