package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/id"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// TaskService manages content tasks.
type TaskService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewTaskService creates a task service.
func NewTaskService(st *store.Store, logger *slog.Logger) *TaskService {
	return &TaskService{store: st, logger: logger}
}

// CreateTaskRequest contains the fields for a new task.
type CreateTaskRequest struct {
	Title    string     `json:"title" validate:"required,max=300"`
	Channel  string     `json:"channel,omitempty"`
	Format   string     `json:"format,omitempty"`
	Priority string     `json:"priority,omitempty"`
	OwnerID  string     `json:"owner_id,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	DueAt    *time.Time `json:"due_at,omitempty"`
	ItemID   string     `json:"item_id,omitempty"`
}

// UpdateTaskRequest contains partial updates. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title    *string    `json:"title,omitempty" validate:"omitempty,max=300"`
	Channel  *string    `json:"channel,omitempty"`
	Format   *string    `json:"format,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Priority *string    `json:"priority,omitempty"`
	OwnerID  *string    `json:"owner_id,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
	DueAt    *time.Time `json:"due_at,omitempty"`
	Done     *bool      `json:"done,omitempty"`
}

// TaskQuery filters the task list.
type TaskQuery struct {
	Owner   string
	Channel string
	Open    bool // Only open tasks
	Overdue bool // Only overdue tasks (implies Open)
}

// CreateTask validates and stores a new task. The assignee is notified.
func (s *TaskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.ContentTask, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if req.ItemID != "" {
		if _, err := s.store.GetItem(ctx, req.ItemID); err != nil {
			return nil, domainerrors.NotFound("linked item not found").WithCause(err)
		}
	}

	taskID, err := id.Generate("task")
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	task := domain.NewContentTask(taskID, req.Title)
	task.Channel = req.Channel
	task.Format = req.Format
	task.OwnerID = req.OwnerID
	task.Notes = req.Notes
	task.DueAt = req.DueAt
	task.ItemID = req.ItemID
	if req.Priority != "" {
		task.Priority = domain.Priority(req.Priority)
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if task.OwnerID != "" {
		s.notifyAssignment(ctx, task)
	}

	return task, nil
}

// GetTask returns one task by ID.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.ContentTask, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("task not found")
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// ListTasks returns tasks matching the query, open tasks first, then by
// due date with missing dates last.
func (s *TaskService) ListTasks(ctx context.Context, q TaskQuery) ([]*domain.ContentTask, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := time.Now()
	out := make([]*domain.ContentTask, 0, len(tasks))
	for _, task := range tasks {
		if q.Owner != "" && task.OwnerID != q.Owner {
			continue
		}
		if q.Channel != "" && !strings.EqualFold(task.Channel, q.Channel) {
			continue
		}
		if (q.Open || q.Overdue) && !task.IsOpen() {
			continue
		}
		if q.Overdue && !task.IsOverdue(now) {
			continue
		}
		out = append(out, task)
	}

	sortTasks(out)
	return out, nil
}

// UpdateTask applies a partial update to a task. Reassignment notifies the
// new assignee.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) (*domain.ContentTask, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	previousOwner := task.OwnerID

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Channel != nil {
		task.Channel = *req.Channel
	}
	if req.Format != nil {
		task.Format = *req.Format
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.IsValid() {
			return nil, domainerrors.Validation(fmt.Sprintf("unknown status %q", *req.Status))
		}
		task.Status = status
	}
	if req.Priority != nil {
		task.Priority = domain.Priority(*req.Priority)
	}
	if req.OwnerID != nil {
		task.OwnerID = *req.OwnerID
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.DueAt != nil {
		task.DueAt = req.DueAt
	}
	if req.Done != nil {
		task.Done = *req.Done
	}
	task.Touch()

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if task.OwnerID != "" && task.OwnerID != previousOwner {
		s.notifyAssignment(ctx, task)
	}

	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := s.GetTask(ctx, taskID); err != nil {
		return err
	}
	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// notifyAssignment creates an assignment notification for the task owner.
// Failures are logged, not returned; the task mutation already succeeded.
func (s *TaskService) notifyAssignment(ctx context.Context, task *domain.ContentTask) {
	notifID, err := id.Generate("notif")
	if err != nil {
		s.logger.Warn("failed to generate notification ID", "error", err)
		return
	}

	notif := &domain.Notification{
		UserID:   task.OwnerID,
		Kind:     domain.NotificationTaskAssigned,
		Message:  fmt.Sprintf("Aufgabe zugewiesen: %s", task.Title),
		EntityID: task.ID,
	}
	notif.ID = notifID
	notif.InitTimestamps()

	if err := s.store.CreateNotification(ctx, notif); err != nil {
		s.logger.Warn("failed to create assignment notification",
			"task_id", task.ID, "user_id", task.OwnerID, "error", err)
	}
}

// sortTasks orders open before done, then by due date ascending with
// missing dates last, then newest first.
func sortTasks(tasks []*domain.ContentTask) {
	slices.SortStableFunc(tasks, func(a, b *domain.ContentTask) int {
		if a.Done != b.Done {
			if a.Done {
				return 1
			}
			return -1
		}
		switch {
		case a.DueAt == nil && b.DueAt == nil:
			return b.UpdatedAt.Compare(a.UpdatedAt)
		case a.DueAt == nil:
			return 1
		case b.DueAt == nil:
			return -1
		}
		if c := a.DueAt.Compare(*b.DueAt); c != 0 {
			return c
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}
