package client

import (
	"fmt"
	"time"
)

type User struct {
	ID                string `json:"_id"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profilePictureURL,omitempty"`
}

type Task struct {
	ID          string
	Title       string
	Description string
	IsChecked   bool
	DateCreated time.Time
	Assignee    *User
}

// taskJSON is a Task as it travels over the wire.
type taskJSON struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsChecked   bool   `json:"isChecked"`
	DateCreated string `json:"dateCreated"`
	Assignee    *User  `json:"assignee"`
}

func (t taskJSON) toTask() (Task, error) {
	dateCreated, err := time.Parse(time.RFC3339Nano, t.DateCreated)
	if err != nil {
		return Task{}, fmt.Errorf("invalid dateCreated %q: %w", t.DateCreated, err)
	}
	return Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsChecked:   t.IsChecked,
		DateCreated: dateCreated,
		Assignee:    t.Assignee,
	}, nil
}

// TaskDraft holds the fields a user fills in to create a task.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsChecked   bool   `json:"isChecked"`
	Assignee    string `json:"assignee,omitempty"`
}

type UserDraft struct {
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profilePictureURL,omitempty"`
}

// updateTaskRequest is the full replacement body for PUT /task/:id.
type updateTaskRequest struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	IsChecked   bool    `json:"isChecked"`
	DateCreated string  `json:"dateCreated,omitempty"`
	Assignee    *string `json:"assignee"`
}

func newUpdateTaskRequest(task Task) updateTaskRequest {
	req := updateTaskRequest{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsChecked:   task.IsChecked,
	}
	if !task.DateCreated.IsZero() {
		req.DateCreated = task.DateCreated.UTC().Format(time.RFC3339Nano)
	}
	if task.Assignee != nil && task.Assignee.ID != "" {
		id := task.Assignee.ID
		req.Assignee = &id
	}
	return req
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Result is the outcome of a call. Error is a human-readable message and is
// only set when Success is false.
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func fail[T any](err error) Result[T] {
	return Result[T]{Error: err.Error()}
}
