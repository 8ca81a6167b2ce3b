package service

import (
	"context"
	"fmt"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/models"
)

// notificationService exposes the expiry notifications produced by the
// background scanner.
type notificationService struct {
	notificationRepository store.NotificationRepository
	logger                 *logger.Logger
}

func NewNotificationService(notificationRepository store.NotificationRepository, logger *logger.Logger) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		logger:                 logger,
	}
}

func (n *notificationService) Unread(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications, err := n.notificationRepository.GetUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("unread notifications lookup failed: %w", err)
	}

	return notifications, nil
}

func (n *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := n.notificationRepository.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("marking notifications read failed: %w", err)
	}

	return nil
}
