package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KaushikNaik2/Schedulix/internal/service"
	"github.com/KaushikNaik2/Schedulix/pkg/response"
)

// NotificationHandler in-app notifications
type NotificationHandler struct {
	svc service.NotificationService
}

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// ListUnread GET /api/v1/notifications
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListUnread(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// MarkRead POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, 19001, "notification not found")
	if !ok {
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotificationNotFound):
			response.NotFound(c, 19001, err.Error())
		case errors.Is(err, service.ErrNotificationNotOwner):
			response.Forbidden(c, 19002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}
