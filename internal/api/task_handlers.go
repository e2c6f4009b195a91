package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

func (s *Server) registerTaskRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTasks",
		Method:      http.MethodGet,
		Path:        "/api/v1/tasks",
		Summary:     "List tasks",
		Description: "Open tasks come first, ordered by due date with undated tasks last.",
		Tags:        []string{"Tasks"},
	}, s.handleListTasks)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTask",
		Method:      http.MethodPost,
		Path:        "/api/v1/tasks",
		Summary:     "Create task",
		Tags:        []string{"Tasks"},
	}, s.handleCreateTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTask",
		Method:      http.MethodGet,
		Path:        "/api/v1/tasks/{id}",
		Summary:     "Get task",
		Tags:        []string{"Tasks"},
	}, s.handleGetTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTask",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tasks/{id}",
		Summary:     "Update task",
		Tags:        []string{"Tasks"},
	}, s.handleUpdateTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTask",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tasks/{id}",
		Summary:     "Delete task",
		Tags:        []string{"Tasks"},
	}, s.handleDeleteTask)
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID        string     `json:"id" doc:"Task ID"`
	Title     string     `json:"title" doc:"Task title"`
	Channel   string     `json:"channel,omitempty" doc:"Marketing channel"`
	Format    string     `json:"format,omitempty" doc:"Content format"`
	Status    string     `json:"status" doc:"Workflow status"`
	Priority  string     `json:"priority,omitempty" doc:"Task priority"`
	OwnerID   string     `json:"owner_id,omitempty" doc:"Assignee"`
	Notes     string     `json:"notes,omitempty" doc:"Working notes"`
	DueAt     *time.Time `json:"due_at,omitempty" doc:"Deadline"`
	ItemID    string     `json:"item_id,omitempty" doc:"Linked content item"`
	Done      bool       `json:"done" doc:"Whether the task is completed"`
	CreatedAt time.Time  `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time  `json:"updated_at" doc:"Last update timestamp"`
}

// TaskOutput wraps a single task for Huma.
type TaskOutput struct {
	Body TaskResponse
}

// TaskListInput carries the task list query parameters.
type TaskListInput struct {
	Owner   string `query:"owner" doc:"Filter by assignee user ID"`
	Channel string `query:"channel" doc:"Filter by channel (case-insensitive)"`
	Open    bool   `query:"open" doc:"Only open tasks"`
	Overdue bool   `query:"overdue" doc:"Only overdue tasks (implies open)"`
}

// TaskListOutput wraps a task list for Huma.
type TaskListOutput struct {
	Body []TaskResponse
}

// CreateTaskInput wraps the create request for Huma.
type CreateTaskInput struct {
	Body service.CreateTaskRequest
}

// UpdateTaskInput wraps the partial update for Huma.
type UpdateTaskInput struct {
	ID   string `path:"id" doc:"Task ID"`
	Body service.UpdateTaskRequest
}

// TaskIDInput identifies one task.
type TaskIDInput struct {
	ID string `path:"id" doc:"Task ID"`
}

func (s *Server) handleListTasks(ctx context.Context, input *TaskListInput) (*TaskListOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	tasks, err := s.services.Tasks.ListTasks(ctx, service.TaskQuery{
		Owner:   input.Owner,
		Channel: input.Channel,
		Open:    input.Open,
		Overdue: input.Overdue,
	})
	if err != nil {
		return nil, err
	}

	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = mapTask(task)
	}
	return &TaskListOutput{Body: out}, nil
}

func (s *Server) handleCreateTask(ctx context.Context, input *CreateTaskInput) (*TaskOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	task, err := s.services.Tasks.CreateTask(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &TaskOutput{Body: mapTask(task)}, nil
}

func (s *Server) handleGetTask(ctx context.Context, input *TaskIDInput) (*TaskOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	task, err := s.services.Tasks.GetTask(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TaskOutput{Body: mapTask(task)}, nil
}

func (s *Server) handleUpdateTask(ctx context.Context, input *UpdateTaskInput) (*TaskOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	task, err := s.services.Tasks.UpdateTask(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &TaskOutput{Body: mapTask(task)}, nil
}

func (s *Server) handleDeleteTask(ctx context.Context, input *TaskIDInput) (*MessageOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Tasks.DeleteTask(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Task deleted"}}, nil
}

func mapTask(task *domain.ContentTask) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Channel:   task.Channel,
		Format:    task.Format,
		Status:    string(task.Status),
		Priority:  string(task.Priority),
		OwnerID:   task.OwnerID,
		Notes:     task.Notes,
		DueAt:     task.DueAt,
		ItemID:    task.ItemID,
		Done:      task.Done,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}
