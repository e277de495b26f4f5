package shelterapi

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// Task represents one unit of shelter work (a feeding, a walk, a cleaning,
// a medical appointment).
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	AnimalID    string     `json:"animal_id,omitempty"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy string     `json:"completed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Task types and statuses as defined by the backend.
const (
	TaskTypeFeeding  = "feeding"
	TaskTypeWalk     = "walk"
	TaskTypeCleaning = "cleaning"
	TaskTypeMedical  = "medical"

	TaskStatusOpen = "open"
	TaskStatusDone = "done"
)

// TaskFilter narrows ListTasks results.
type TaskFilter struct {
	Status   string
	Type     string
	AnimalID string
	// DueWithin limits results to tasks due within the given duration
	// from now. Zero means no due-date filtering.
	DueWithin time.Duration
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	AnimalID    string     `json:"animal_id,omitempty"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

// ListTasks retrieves tasks, optionally filtered.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.AnimalID != "" {
		query.Set("animal_id", filter.AnimalID)
	}
	if filter.DueWithin > 0 {
		query.Set("due_within_minutes", strconv.Itoa(int(filter.DueWithin.Minutes())))
	}

	path := "/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var tasks []Task
	if err := c.Get(ctx, path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a single task by id.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.Get(ctx, "/tasks/"+id, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask registers a new task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.Post(ctx, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask marks a task as done.
func (c *Client) CompleteTask(ctx context.Context, id string) (*Task, error) {
	req := struct {
		Status string `json:"status"`
	}{
		Status: TaskStatusDone,
	}

	var task Task
	if err := c.Patch(ctx, "/tasks/"+id, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
