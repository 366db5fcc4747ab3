package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/service"
	"github.com/KaushikNaik2/Schedulix/pkg/response"
)

// AvailabilityHandler explicit availability lookups
type AvailabilityHandler struct {
	svc service.AvailabilityService
}

// NewAvailabilityHandler creates an AvailabilityHandler
func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// Check where a faculty member is on a weekday at a time
// GET /api/v1/availability?faculty_id=&day=MONDAY&time=9:30
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
		return
	}

	day, _ := model.ParseDayOfWeek(q.Day)
	resp, err := h.svc.Check(c.Request.Context(), q.FacultyID, day, q.Time)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 16001, "faculty member not found")
		case errors.Is(err, service.ErrInvalidClock):
			response.BadRequest(c, 16002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}
