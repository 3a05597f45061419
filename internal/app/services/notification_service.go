package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/repositories"
	"github.com/stackit/stackit/internal/pkg/helpers"
)

// NotificationService defines the interface for notification reads
type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int) ([]dto.NotificationResponse, dto.PaginationInfo, error)
	GetUnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	DeleteNotification(ctx context.Context, id, userID int64) error
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo *repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo *repositories.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// GetNotifications retrieves the user's notifications newest first
func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID int64, page, pageSize int) ([]dto.NotificationResponse, dto.PaginationInfo, error) {
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list notifications")
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, dto.FromNotification(&notifications[i]))
	}

	return responses, helpers.NewPaginationInfo(total, page, pageSize), nil
}

// GetUnreadCount returns the number of unread notifications
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UnreadCountResponse{Count: count}, nil
}

// MarkRead marks one of the user's notifications as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of the user's notifications as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// DeleteNotification removes one of the user's notifications
func (s *notificationServiceImpl) DeleteNotification(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.Delete(ctx, id, userID)
}
