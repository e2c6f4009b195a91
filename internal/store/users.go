package store

import (
	"context"
	"fmt"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
)

// CreateUser stores a new workspace member and notifies connected admins.
// Email uniqueness is enforced case-insensitively via the email index.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if err := s.Users.Create(ctx, user.ID, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	s.eventEmitter.Emit(sse.NewEvent(sse.EventUserCreated, sse.EntityEventData{ID: user.ID, Entity: user}))
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.Users.Get(ctx, id)
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, "email", email)
}

// ListUsers returns all workspace members.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.Users.ListAll(ctx)
}

// UpdateUser persists changes to a user and notifies connected admins.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	if err := s.Users.Update(ctx, user.ID, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.eventEmitter.Emit(sse.NewEvent(sse.EventUserUpdated, sse.EntityEventData{ID: user.ID, Entity: user}))
	return nil
}

// HasRootUser reports whether a root admin exists yet.
// Used during setup to decide whether the first registration becomes root.
func (s *Store) HasRootUser(ctx context.Context) (bool, error) {
	for user, err := range s.Users.List(ctx) {
		if err != nil {
			return false, err
		}
		if user.IsRoot {
			return true, nil
		}
	}
	return false, nil
}

// CountUsers returns the number of workspace members.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	return s.Users.Count(ctx)
}
