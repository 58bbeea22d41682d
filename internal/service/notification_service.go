package service

import (
	"context"
	"errors"

	"telemed-be/internal/dto"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationDelivery pushes stored notifications to connected
// clients in real time.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type INotificationService interface {
	List(ctx context.Context, userId uuid.UUID, limit, offset int) ([]dto.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, notificationId uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) INotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID, limit, offset int) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.notifications.GetNotificationsByUserID(ctx, userId, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("failed to list notifications", err)
	}

	out := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = notificationToDTO(&n)
	}
	return out, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	count, err := s.notifications.GetUnreadCount(ctx, userId)
	if err != nil {
		return 0, apperror.Internal("failed to count unread notifications", err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, notificationId uuid.UUID) error {
	if err := s.notifications.MarkAsRead(ctx, notificationId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("notification not found", nil)
		}
		return apperror.Internal("failed to mark notification as read", err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	if err := s.notifications.MarkAllAsRead(ctx, userId); err != nil {
		return apperror.Internal("failed to mark notifications as read", err)
	}
	return nil
}

func notificationToDTO(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		Id:        n.Id,
		TypeCode:  n.TypeCode,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
