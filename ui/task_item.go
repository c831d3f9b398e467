package ui

import (
	"context"
	"fmt"
	"io"
	"sync"

	"taskboard/client"
)

// TaskItem is one row of the task list with a check mark.
type TaskItem struct {
	api     TaskAPI
	alerter Alerter

	mu      sync.Mutex
	task    client.Task
	loading bool
}

func NewTaskItem(api TaskAPI, alerter Alerter, task client.Task) *TaskItem {
	return &TaskItem{api: api, alerter: alerter, task: task}
}

func (i *TaskItem) Task() client.Task {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.task
}

// Toggle flips isChecked right away and persists the change. On success
// the server's copy replaces the local one; on failure the flip is undone.
// It returns false without doing anything while a toggle is in flight.
func (i *TaskItem) Toggle(ctx context.Context) bool {
	i.mu.Lock()
	if i.loading {
		i.mu.Unlock()
		return false
	}
	previous := i.task
	i.task.IsChecked = !i.task.IsChecked
	optimistic := i.task
	i.loading = true
	i.mu.Unlock()

	result := i.api.UpdateTask(ctx, optimistic)

	i.mu.Lock()
	i.loading = false
	if result.Success {
		i.task = result.Data
	} else {
		i.task = previous
	}
	i.mu.Unlock()

	if !result.Success {
		i.alerter.Alert("Failed to update task: " + result.Error)
	}
	return result.Success
}

func (i *TaskItem) Render(w io.Writer) {
	task := i.Task()

	mark := " "
	if task.IsChecked {
		mark = "x"
	}
	fmt.Fprintf(w, "[%s] %s  (%s)\n", mark, task.Title, task.ID)
	if task.Description != "" {
		fmt.Fprintf(w, "    %s\n", task.Description)
	}
}
