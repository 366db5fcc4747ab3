package service

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
	"github.com/KaushikNaik2/Schedulix/pkg/mq"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationNotOwner = errors.New("notification belongs to another user")
)

// NotificationService in-app notifications
type NotificationService interface {
	// Notify stores a notification and publishes it. Failures are logged only.
	Notify(ctx context.Context, userID, message string)
	ListUnread(ctx context.Context, userID string) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}

// notificationEvent body published to the notification queue
type notificationEvent struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

type notificationService struct {
	repo      *repository.Repository
	publisher mq.Publisher // nil: queue disabled
	logger    *zap.Logger
}

// NewNotificationService creates a NotificationService; publisher may be nil
func NewNotificationService(repo *repository.Repository, publisher mq.Publisher, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, publisher: publisher, logger: logger}
}

func (s *notificationService) Notify(ctx context.Context, userID, message string) {
	n := &model.Notification{UserID: userID, Message: message}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("create notification failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(notificationEvent{
		NotificationID: n.NotificationID,
		UserID:         n.UserID,
		Message:        n.Message,
		CreatedAt:      n.CreatedAt,
	})
	if err != nil {
		s.logger.Error("encode notification event failed", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, body); err != nil {
		s.logger.Warn("publish notification failed",
			zap.String("notification_id", n.NotificationID),
			zap.Error(err),
		)
	}
}

func (s *notificationService) ListUnread(ctx context.Context, userID string) ([]dto.NotificationResponse, error) {
	list, err := s.repo.Notification.ListUnreadByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:        n.NotificationID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	n, err := s.repo.Notification.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.UserID != userID {
		return ErrNotificationNotOwner
	}
	return s.repo.Notification.MarkRead(ctx, notificationID)
}
