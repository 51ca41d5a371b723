package api

import (
	"context"
	"fmt"
	"net/http"

	"tally/internal/core"
)

type createTaskRequest struct {
	Title string `json:"title"`
}

type updateTaskRequest struct {
	IsCompleted bool `json:"is_completed"`
}

// ListTasks returns the user's tasks as the server orders them.
func (c *Client) ListTasks(ctx context.Context) ([]core.Task, error) {
	var out []core.Task
	if err := c.doJSON(ctx, http.MethodGet, "/tasks/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask submits a title; the server assigns id, priority, and timestamps.
func (c *Client) CreateTask(ctx context.Context, title string) (core.Task, error) {
	var out core.Task
	if err := c.doJSON(ctx, http.MethodPost, "/tasks/", createTaskRequest{Title: title}, &out); err != nil {
		return core.Task{}, err
	}
	return out, nil
}

// UpdateTask sets the completion flag and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id int64, isCompleted bool) (core.Task, error) {
	var out core.Task
	path := fmt.Sprintf("/tasks/%d", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, updateTaskRequest{IsCompleted: isCompleted}, &out); err != nil {
		return core.Task{}, err
	}
	return out, nil
}

// DeleteTask removes a task server-side. The response carries no body.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// DecomposeTask asks the server to generate a subtask breakdown and returns
// the task with subtasks populated.
func (c *Client) DecomposeTask(ctx context.Context, id int64) (core.Task, error) {
	var out core.Task
	path := fmt.Sprintf("/tasks/%d/decompose", id)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return core.Task{}, err
	}
	return out, nil
}
