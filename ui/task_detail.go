package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"taskboard/client"
)

const (
	notFoundText      = "Task not found."
	noDescriptionText = "No description provided."
	unassignedText    = "Unassigned"
	dateLayout        = "Monday, January 2, 2006 at 3:04 PM"
)

// TaskDetail shows one task and switches between a read view and an edit
// form.
type TaskDetail struct {
	api      TaskAPI
	alerter  Alerter
	id       string
	location *time.Location

	mu      sync.Mutex
	loaded  bool
	task    *client.Task
	form    *TaskForm
	editing bool
}

func NewTaskDetail(api TaskAPI, alerter Alerter, id string) *TaskDetail {
	return &TaskDetail{api: api, alerter: alerter, id: id, location: time.Local}
}

// SetLocation sets the zone the creation date is shown in.
func (d *TaskDetail) SetLocation(loc *time.Location) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.location = loc
}

// Load fetches the task. Any failure is shown as "not found".
func (d *TaskDetail) Load(ctx context.Context) bool {
	result := d.api.GetTask(ctx, d.id)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaded = true
	if !result.Success {
		d.task = nil
		return false
	}
	task := result.Data
	d.task = &task
	return true
}

func (d *TaskDetail) Task() (client.Task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.task == nil {
		return client.Task{}, false
	}
	return *d.task, true
}

func (d *TaskDetail) Editing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editing
}

// Edit switches to the edit form. A successful submit replaces the shown
// task and returns to the read view. It returns nil when there is no task.
func (d *TaskDetail) Edit() *TaskForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.task == nil {
		return nil
	}

	form := NewEditForm(d.api, d.alerter, *d.task)
	form.OnSubmit = func(updated client.Task) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.task = &updated
		d.editing = false
		d.form = nil
	}
	d.form = form
	d.editing = true
	return form
}

// Cancel leaves the edit form without saving.
func (d *TaskDetail) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editing = false
	d.form = nil
}

func (d *TaskDetail) Render(w io.Writer) {
	d.mu.Lock()
	loaded, task, editing, form, loc := d.loaded, d.task, d.editing, d.form, d.location
	d.mu.Unlock()

	if !loaded {
		return
	}
	if task == nil {
		fmt.Fprintln(w, notFoundText)
		return
	}
	if editing && form != nil {
		form.Render(w)
		return
	}

	fmt.Fprintln(w, task.Title)
	if task.Description != "" {
		fmt.Fprintln(w, task.Description)
	} else {
		fmt.Fprintln(w, noDescriptionText)
	}

	assignee := unassignedText
	if task.Assignee != nil {
		assignee = task.Assignee.Name
		if assignee == "" {
			assignee = task.Assignee.ID
		}
	}
	fmt.Fprintf(w, "Assignee: %s\n", assignee)

	status := "Not done"
	if task.IsChecked {
		status = "Done"
	}
	fmt.Fprintf(w, "Status: %s\n", status)
	fmt.Fprintf(w, "Date created: %s\n", task.DateCreated.In(loc).Format(dateLayout))
}
