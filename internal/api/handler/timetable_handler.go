package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KaushikNaik2/Schedulix/internal/service"
	"github.com/KaushikNaik2/Schedulix/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// TimetableHandler timetable upload, read and export
type TimetableHandler struct {
	svc      service.TimetableService
	maxBytes int64
}

// NewTimetableHandler creates a TimetableHandler
func NewTimetableHandler(svc service.TimetableService, maxBytes int64) *TimetableHandler {
	return &TimetableHandler{svc: svc, maxBytes: maxBytes}
}

// Upload replaces the caller's timetable with an .xlsx workbook
// POST /api/v1/timetables/upload (multipart, field "file")
//
// Row-level problems are returned in "skipped"; the upload still succeeds.
func (h *TimetableHandler) Upload(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	file, header, err := c.Request.FormFile("file")
	if bodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "timetable workbook is too large")
		return
	}
	if err != nil {
		response.BadRequest(c, 15000, "upload an .xlsx workbook in the \"file\" field")
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "timetable workbook is too large")
		return
	}

	resp, err := h.svc.ImportTimetable(c.Request.Context(), userID, file)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetMyTimetable caller's own week
// GET /api/v1/timetables/me
func (h *TimetableHandler) GetMyTimetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetTimetable(c.Request.Context(), userID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetFacultyTimetable any faculty member's week
// GET /api/v1/timetables/faculty/:id
func (h *TimetableHandler) GetFacultyTimetable(c *gin.Context) {
	facultyID, ok := pathID(c, 15001, "faculty member not found")
	if !ok {
		return
	}
	resp, err := h.svc.GetTimetable(c.Request.Context(), facultyID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// ExportXLSX download in the upload format
// GET /api/v1/timetables/faculty/:id/export.xlsx
func (h *TimetableHandler) ExportXLSX(c *gin.Context) {
	facultyID, ok := pathID(c, 15001, "faculty member not found")
	if !ok {
		return
	}
	buf, filename, err := h.svc.ExportXLSX(c.Request.Context(), facultyID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.Attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportICS download as a weekly recurring calendar
// GET /api/v1/timetables/faculty/:id/export.ics
func (h *TimetableHandler) ExportICS(c *gin.Context) {
	facultyID, ok := pathID(c, 15001, "faculty member not found")
	if !ok {
		return
	}
	body, filename, err := h.svc.ExportICS(c.Request.Context(), facultyID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.Attachment(c, filename, contentTypeICS, body)
}

// Template empty upload workbook
// GET /api/v1/timetables/template
func (h *TimetableHandler) Template(c *gin.Context) {
	buf, filename, err := h.svc.Template()
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.Attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// handleTimetableError maps timetable errors to responses
func handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 15001, "faculty member not found")
	case errors.Is(err, service.ErrTimetableNotFaculty):
		response.Forbidden(c, 15002, err.Error())
	case errors.Is(err, service.ErrTimetableUnreadable):
		response.UnprocessableEntity(c, 15003, "timetable workbook cannot be read", err.Error())
	case errors.Is(err, service.ErrTimetableMissingHeader):
		response.UnprocessableEntity(c, 15004, "timetable workbook has no header row", err.Error())
	case errors.Is(err, service.ErrTimetableNoDayColumns):
		response.UnprocessableEntity(c, 15005, "timetable header names no day columns", err.Error())
	case errors.Is(err, service.ErrTimetableExportFailed):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
