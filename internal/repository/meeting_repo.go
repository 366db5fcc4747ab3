package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/internal/model"
)

// MeetingRepository meeting request data access
type MeetingRepository interface {
	Create(ctx context.Context, req *model.MeetingRequest) error
	GetByID(ctx context.Context, id string) (*model.MeetingRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.MeetingRequest, error)
	// ListByFaculty filters by status when status is non-empty
	ListByFaculty(ctx context.Context, facultyID, status string) ([]model.MeetingRequest, error)
	Update(ctx context.Context, req *model.MeetingRequest) error
	Delete(ctx context.Context, id string) error
}

type meetingRepo struct {
	db *gorm.DB
}

// NewMeetingRepo creates a MeetingRepository
func NewMeetingRepo(db *gorm.DB) MeetingRepository {
	return &meetingRepo{db: db}
}

func (r *meetingRepo) Create(ctx context.Context, req *model.MeetingRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *meetingRepo) GetByID(ctx context.Context, id string) (*model.MeetingRequest, error) {
	var req model.MeetingRequest
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Faculty").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *meetingRepo) ListByStudent(ctx context.Context, studentID string) ([]model.MeetingRequest, error) {
	var reqs []model.MeetingRequest
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *meetingRepo) ListByFaculty(ctx context.Context, facultyID, status string) ([]model.MeetingRequest, error) {
	var reqs []model.MeetingRequest
	db := r.db.WithContext(ctx).
		Preload("Student").
		Where("faculty_id = ?", facultyID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *meetingRepo) Update(ctx context.Context, req *model.MeetingRequest) error {
	return r.db.WithContext(ctx).
		Omit("Student", "Faculty").
		Save(req).Error
}

func (r *meetingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("request_id = ?", id).
		Delete(&model.MeetingRequest{}).Error
}
