package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"taskboard/client"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

const titleRequired = "Title is required."

type FormErrors struct {
	Title string
}

// TaskForm edits a draft and submits it as a new task or as a replacement
// of an existing one.
type TaskForm struct {
	api     TaskAPI
	alerter Alerter
	mode    Mode
	base    client.Task

	Title       string
	Description string
	Assignee    string
	Errors      FormErrors

	// OnSubmit receives the server's copy after a successful submit.
	OnSubmit func(client.Task)

	mu         sync.Mutex
	submitting bool
}

func NewCreateForm(api TaskAPI, alerter Alerter) *TaskForm {
	return &TaskForm{api: api, alerter: alerter, mode: ModeCreate}
}

// NewEditForm prefills the draft from task.
func NewEditForm(api TaskAPI, alerter Alerter, task client.Task) *TaskForm {
	form := &TaskForm{
		api:         api,
		alerter:     alerter,
		mode:        ModeEdit,
		base:        task,
		Title:       task.Title,
		Description: task.Description,
	}
	if task.Assignee != nil {
		form.Assignee = task.Assignee.ID
	}
	return form
}

func (f *TaskForm) Mode() Mode {
	return f.mode
}

func (f *TaskForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit validates the draft and sends it. It reports whether the server
// accepted it; a submit while another is in flight is refused.
func (f *TaskForm) Submit(ctx context.Context) bool {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return false
	}
	f.Errors = FormErrors{}
	if strings.TrimSpace(f.Title) == "" {
		f.Errors.Title = titleRequired
		f.mu.Unlock()
		return false
	}
	f.submitting = true
	title, description, assignee := f.Title, f.Description, strings.TrimSpace(f.Assignee)
	f.mu.Unlock()

	var result client.Result[client.Task]
	if f.mode == ModeCreate {
		result = f.api.CreateTask(ctx, client.TaskDraft{
			Title:       title,
			Description: description,
			Assignee:    assignee,
		})
	} else {
		task := f.base
		task.Title = title
		task.Description = description
		task.Assignee = nil
		if assignee != "" {
			task.Assignee = &client.User{ID: assignee}
		}
		result = f.api.UpdateTask(ctx, task)
	}

	f.mu.Lock()
	f.submitting = false
	if result.Success && f.mode == ModeCreate {
		f.Title, f.Description, f.Assignee = "", "", ""
	}
	if result.Success && f.mode == ModeEdit {
		f.base = result.Data
	}
	f.mu.Unlock()

	if !result.Success {
		f.alerter.Alert(result.Error)
		return false
	}
	if f.OnSubmit != nil {
		f.OnSubmit(result.Data)
	}
	return true
}

func (f *TaskForm) Render(w io.Writer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mode == ModeCreate {
		fmt.Fprintln(w, "New task")
	} else {
		fmt.Fprintln(w, "Edit task")
	}
	fmt.Fprintf(w, "  Title: %s\n", f.Title)
	if f.Errors.Title != "" {
		fmt.Fprintf(w, "    ! %s\n", f.Errors.Title)
	}
	fmt.Fprintf(w, "  Description (optional): %s\n", f.Description)
	fmt.Fprintf(w, "  Assignee ID (optional): %s\n", f.Assignee)
	if f.submitting {
		fmt.Fprintln(w, "  Saving...")
	}
}
