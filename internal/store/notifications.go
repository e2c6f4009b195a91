package store

import (
	"context"
	"fmt"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
)

// CreateNotification stores a notification and pushes it to the target
// user's connected clients.
func (s *Store) CreateNotification(ctx context.Context, n *domain.Notification) error {
	if err := s.Notifications.Create(ctx, n.ID, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	s.eventEmitter.Emit(sse.NewUserEvent(sse.EventNotificationCreated, n.UserID, n))
	return nil
}

// GetNotification retrieves a notification by ID.
func (s *Store) GetNotification(ctx context.Context, id string) (*domain.Notification, error) {
	return s.Notifications.Get(ctx, id)
}

// ListUserNotifications returns all notifications for one user.
func (s *Store) ListUserNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.Notifications.ListByIndexPrefix(ctx, "user", userID+":")
}

// MarkNotificationRead sets the read timestamp on a notification.
// Idempotent for already-read notifications.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) (*domain.Notification, error) {
	n, err := s.Notifications.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if n.IsRead() {
		return n, nil
	}

	n.MarkRead()
	if err := s.Notifications.Update(ctx, id, n); err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

// MarkAllNotificationsRead marks every unread notification of a user as
// read and returns how many were updated.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) (int, error) {
	notifications, err := s.ListUserNotifications(ctx, userID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, n := range notifications {
		if n.IsRead() {
			continue
		}
		n.MarkRead()
		if err := s.Notifications.Update(ctx, n.ID, n); err != nil {
			return updated, fmt.Errorf("mark notification %s read: %w", n.ID, err)
		}
		updated++
	}
	return updated, nil
}

// DeleteNotification removes a notification.
func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	return s.Notifications.Delete(ctx, id)
}
