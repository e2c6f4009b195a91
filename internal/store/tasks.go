package store

import (
	"context"
	"fmt"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
)

// CreateTask stores a new task and broadcasts the creation.
func (s *Store) CreateTask(ctx context.Context, task *domain.ContentTask) error {
	if err := s.Tasks.Create(ctx, task.ID, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	s.eventEmitter.Emit(sse.NewEntityEvent(sse.EventTaskCreated, task.ID, task))
	return nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*domain.ContentTask, error) {
	return s.Tasks.Get(ctx, id)
}

// ListTasks returns all tasks.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.ContentTask, error) {
	return s.Tasks.ListAll(ctx)
}

// ListTasksByOwner returns all tasks owned by one user.
func (s *Store) ListTasksByOwner(ctx context.Context, ownerID string) ([]*domain.ContentTask, error) {
	return s.Tasks.ListByIndexPrefix(ctx, "owner", ownerID+":")
}

// UpdateTask persists changes to a task and broadcasts the update.
func (s *Store) UpdateTask(ctx context.Context, task *domain.ContentTask) error {
	if err := s.Tasks.Update(ctx, task.ID, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	s.eventEmitter.Emit(sse.NewEntityEvent(sse.EventTaskUpdated, task.ID, task))
	return nil
}

// DeleteTask removes a task and broadcasts the deletion.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := s.Tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.eventEmitter.Emit(sse.NewEntityEvent(sse.EventTaskDeleted, id, nil))
	return nil
}
