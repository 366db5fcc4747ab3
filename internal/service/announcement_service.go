package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
)

// AnnouncementEditWindow how long after creation the author may still edit or delete
const AnnouncementEditWindow = time.Hour

var (
	ErrAnnouncementNotFound         = errors.New("announcement not found")
	ErrAnnouncementNotOwner         = errors.New("announcement belongs to another faculty member")
	ErrAnnouncementEditWindowClosed = errors.New("announcements can only be changed within one hour of posting")
)

// AnnouncementService faculty announcements
type AnnouncementService interface {
	Create(ctx context.Context, facultyID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	List(ctx context.Context) ([]dto.AnnouncementResponse, error)
	Update(ctx context.Context, facultyID, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, facultyID, id string) error
}

type announcementService struct {
	repo   *repository.Repository
	clock  Clock
	logger *zap.Logger
}

// NewAnnouncementService creates an AnnouncementService
func NewAnnouncementService(repo *repository.Repository, clock Clock, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, clock: clock, logger: logger}
}

func (s *announcementService) Create(ctx context.Context, facultyID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	faculty, err := s.repo.User.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	a := &model.Announcement{
		FacultyID: facultyID,
		Title:     req.Title,
		Message:   req.Message,
	}
	if err := s.repo.Announcement.Create(ctx, a); err != nil {
		s.logger.Error("create announcement failed", zap.Error(err))
		return nil, err
	}
	a.Faculty = faculty

	resp := toAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) List(ctx context.Context) ([]dto.AnnouncementResponse, error) {
	list, err := s.repo.Announcement.List(ctx)
	if err != nil {
		s.logger.Error("list announcements failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		out = append(out, toAnnouncementResponse(&list[i]))
	}
	return out, nil
}

func (s *announcementService) Update(ctx context.Context, facultyID, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	a, err := s.editable(ctx, facultyID, id)
	if err != nil {
		return nil, err
	}

	a.Title = req.Title
	a.Message = req.Message
	if err := s.repo.Announcement.Update(ctx, a); err != nil {
		s.logger.Error("update announcement failed", zap.String("announcement_id", id), zap.Error(err))
		return nil, err
	}

	resp := toAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) Delete(ctx context.Context, facultyID, id string) error {
	if _, err := s.editable(ctx, facultyID, id); err != nil {
		return err
	}
	return s.repo.Announcement.Delete(ctx, id)
}

// editable loads the announcement and checks ownership and the edit window
func (s *announcementService) editable(ctx context.Context, facultyID, id string) (*model.Announcement, error) {
	a, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	if a.FacultyID != facultyID {
		return nil, ErrAnnouncementNotOwner
	}
	if s.clock.Now().Sub(a.CreatedAt) >= AnnouncementEditWindow {
		return nil, ErrAnnouncementEditWindowClosed
	}
	return a, nil
}

func toAnnouncementResponse(a *model.Announcement) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:        a.AnnouncementID,
		Title:     a.Title,
		Message:   a.Message,
		Faculty:   toUserSummary(a.Faculty),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}
