package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
	"github.com/KaushikNaik2/Schedulix/pkg/storage"
)

// ── user errors ──

var (
	ErrStorageDisabled     = errors.New("profile picture storage is not configured")
	ErrUnsupportedImage    = errors.New("profile picture must be jpeg, png, gif or webp")
	ErrProfilePictureEmpty = errors.New("profile picture is empty")
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// UserService profiles. Every returned profile carries the current availability.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListFaculty(ctx context.Context) ([]dto.UserResponse, error)
	UploadProfilePicture(ctx context.Context, userID string, r io.Reader, size int64, contentType string) (*dto.UserResponse, error)
	RemoveProfilePicture(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type userService struct {
	repo         *repository.Repository
	availability AvailabilityService
	storage      storage.ObjectStorage // nil: uploads disabled
	logger       *zap.Logger
}

// NewUserService creates a UserService; objects may be nil
func NewUserService(repo *repository.Repository, availability AvailabilityService, objects storage.ObjectStorage, logger *zap.Logger) UserService {
	return &userService{repo: repo, availability: availability, storage: objects, logger: logger}
}

// ────────────────────── profile ──────────────────────

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Department != nil {
		user.Department = req.Department
	}
	if req.Subjects != nil {
		user.Subjects = req.Subjects
	}
	if req.OfficeLocation != nil {
		user.OfficeLocation = req.OfficeLocation
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update profile failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.profile(ctx, user), nil
}

func (s *userService) ListFaculty(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListByRole(ctx, model.RoleFaculty)
	if err != nil {
		s.logger.Error("list faculty failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *s.profile(ctx, &users[i]))
	}
	return out, nil
}

// ────────────────────── profile picture ──────────────────────

func (s *userService) UploadProfilePicture(ctx context.Context, userID string, r io.Reader, size int64, contentType string) (*dto.UserResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedImage
	}
	if size <= 0 {
		return nil, ErrProfilePictureEmpty
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.NewString(), ext)
	url, err := s.storage.Put(ctx, key, r, size, contentType)
	if err != nil {
		s.logger.Error("upload profile picture failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	previous := user.ProfileImageURL
	user.ProfileImageURL = &url
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("save profile picture url failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.removeObject(ctx, previous)
	return s.profile(ctx, user), nil
}

func (s *userService) RemoveProfilePicture(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := user.ProfileImageURL
	user.ProfileImageURL = nil
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("clear profile picture failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.removeObject(ctx, previous)
	return s.profile(ctx, user), nil
}

// removeObject deletes a replaced picture; failures only leave an orphan object
func (s *userService) removeObject(ctx context.Context, url *string) {
	if s.storage == nil || url == nil {
		return
	}
	key, ok := s.storage.KeyFromURL(*url)
	if !ok {
		return
	}
	if err := s.storage.Remove(ctx, key); err != nil {
		s.logger.Warn("remove old profile picture failed", zap.String("key", key), zap.Error(err))
	}
}

// ── helpers ──

func (s *userService) load(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) profile(ctx context.Context, user *model.User) *dto.UserResponse {
	resp := toUserResponse(user, s.availability.Current(ctx, user))
	return &resp
}

func toUserResponse(u *model.User, a Availability) dto.UserResponse {
	return dto.UserResponse{
		ID:              u.UserID,
		Username:        u.Username,
		Email:           u.Email,
		Role:            u.Role,
		FullName:        u.FullName,
		Department:      u.Department,
		Subjects:        u.Subjects,
		OfficeLocation:  u.OfficeLocation,
		ProfileImageURL: u.ProfileImageURL,
		CurrentStatus:   a.Status,
		CurrentLocation: a.Location,
	}
}
