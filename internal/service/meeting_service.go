package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
)

var (
	ErrMeetingNotFound        = errors.New("meeting request not found")
	ErrMeetingNotOwner        = errors.New("meeting request belongs to another user")
	ErrMeetingFacultyNotFound = errors.New("faculty member not found")
	ErrMeetingInvalidSchedule = errors.New("meeting date must be YYYY-MM-DD and time HH:mm")
)

// MeetingService student ↔ faculty meeting requests
type MeetingService interface {
	Create(ctx context.Context, studentID string, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, error)
	ListForStudent(ctx context.Context, studentID string) ([]dto.MeetingResponse, error)
	Delete(ctx context.Context, studentID, requestID string) error
	// ListForFaculty onlyPending=false returns every status
	ListForFaculty(ctx context.Context, facultyID string, onlyPending bool) ([]dto.MeetingResponse, error)
	Decide(ctx context.Context, facultyID, requestID, status string) (*dto.MeetingResponse, error)
}

type meetingService struct {
	repo          *repository.Repository
	notifications NotificationService
	logger        *zap.Logger
}

// NewMeetingService creates a MeetingService
func NewMeetingService(repo *repository.Repository, notifications NotificationService, logger *zap.Logger) MeetingService {
	return &meetingService{repo: repo, notifications: notifications, logger: logger}
}

func (s *meetingService) Create(ctx context.Context, studentID string, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	date, err := time.Parse("2006-01-02", req.MeetingDate)
	if err != nil {
		return nil, ErrMeetingInvalidSchedule
	}
	minute, ok := model.ClockMinutes(req.MeetingTime)
	if !ok {
		return nil, ErrMeetingInvalidSchedule
	}
	clock := model.FormatClock(minute)

	student, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	faculty, err := s.repo.User.GetByUsername(ctx, strings.TrimSpace(req.FacultyUsername))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingFacultyNotFound
		}
		return nil, err
	}
	if !faculty.IsFaculty() {
		return nil, ErrMeetingFacultyNotFound
	}

	m := &model.MeetingRequest{
		StudentID:   student.UserID,
		FacultyID:   faculty.UserID,
		Topic:       req.Topic,
		Status:      model.MeetingStatusPending,
		MeetingDate: &date,
		MeetingTime: &clock,
	}
	if err := s.repo.Meeting.Create(ctx, m); err != nil {
		s.logger.Error("create meeting request failed", zap.Error(err))
		return nil, fmt.Errorf("create meeting request: %w", err)
	}

	s.notifications.Notify(ctx, faculty.UserID,
		fmt.Sprintf("You have a new meeting request from %s.", student.Username))

	m.Student = student
	m.Faculty = faculty
	resp := toMeetingResponse(m)
	return &resp, nil
}

func (s *meetingService) ListForStudent(ctx context.Context, studentID string) ([]dto.MeetingResponse, error) {
	list, err := s.repo.Meeting.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list student meetings failed", zap.Error(err))
		return nil, err
	}
	return toMeetingResponses(list), nil
}

func (s *meetingService) Delete(ctx context.Context, studentID, requestID string) error {
	m, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if m.StudentID != studentID {
		return ErrMeetingNotOwner
	}
	return s.repo.Meeting.Delete(ctx, requestID)
}

func (s *meetingService) ListForFaculty(ctx context.Context, facultyID string, onlyPending bool) ([]dto.MeetingResponse, error) {
	status := ""
	if onlyPending {
		status = model.MeetingStatusPending
	}
	list, err := s.repo.Meeting.ListByFaculty(ctx, facultyID, status)
	if err != nil {
		s.logger.Error("list faculty meetings failed", zap.Error(err))
		return nil, err
	}
	return toMeetingResponses(list), nil
}

// Decide approves or denies; a decided request may be decided again
func (s *meetingService) Decide(ctx context.Context, facultyID, requestID, status string) (*dto.MeetingResponse, error) {
	m, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if m.FacultyID != facultyID {
		return nil, ErrMeetingNotOwner
	}

	m.Status = status
	if err := s.repo.Meeting.Update(ctx, m); err != nil {
		s.logger.Error("update meeting status failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	s.notifications.Notify(ctx, m.StudentID,
		fmt.Sprintf("Your meeting request for '%s' was %s.", m.Topic, strings.ToLower(status)))

	resp := toMeetingResponse(m)
	return &resp, nil
}

func (s *meetingService) getRequest(ctx context.Context, requestID string) (*model.MeetingRequest, error) {
	m, err := s.repo.Meeting.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	return m, nil
}

// ── converters ──

func toUserSummary(u *model.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:              u.UserID,
		Username:        u.Username,
		FullName:        u.FullName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

func toMeetingResponse(m *model.MeetingRequest) dto.MeetingResponse {
	resp := dto.MeetingResponse{
		ID:        m.RequestID,
		Topic:     m.Topic,
		Status:    m.Status,
		Student:   toUserSummary(m.Student),
		Faculty:   toUserSummary(m.Faculty),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.MeetingDate != nil {
		d := m.MeetingDate.Format("2006-01-02")
		resp.MeetingDate = &d
	}
	if m.MeetingTime != nil {
		t := model.NormalizeClock(*m.MeetingTime)
		resp.MeetingTime = &t
	}
	return resp
}

func toMeetingResponses(list []model.MeetingRequest) []dto.MeetingResponse {
	out := make([]dto.MeetingResponse, 0, len(list))
	for i := range list {
		out = append(out, toMeetingResponse(&list[i]))
	}
	return out
}
