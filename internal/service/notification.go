package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// NotificationService manages per-user dashboard notifications.
type NotificationService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewNotificationService creates a notification service.
func NewNotificationService(st *store.Store, logger *slog.Logger) *NotificationService {
	return &NotificationService{store: st, logger: logger}
}

// NotificationList is the listing response with an unread counter.
type NotificationList struct {
	Notifications []*domain.Notification `json:"notifications"`
	Unread        int                    `json:"unread"`
}

// List returns the user's notifications, newest first, with the unread count.
func (s *NotificationService) List(ctx context.Context, userID string) (*NotificationList, error) {
	notifications, err := s.store.ListUserNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead() {
			unread++
		}
	}

	return &NotificationList{Notifications: notifications, Unread: unread}, nil
}

// MarkRead marks one notification as read. Only the owner may do this.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notifID string) error {
	notif, err := s.store.GetNotification(ctx, notifID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("notification not found")
		}
		return fmt.Errorf("get notification: %w", err)
	}
	if notif.UserID != userID {
		return domainerrors.Forbidden("notification belongs to another user")
	}

	if _, err := s.store.MarkNotificationRead(ctx, notifID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many were affected.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	count, err := s.store.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return count, nil
}
