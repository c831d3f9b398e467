package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
)

const EmptyListPlaceholder = "No tasks yet. Create one above!"

type TaskList struct {
	api     TaskAPI
	alerter Alerter
	title   string

	once   sync.Once
	mu     sync.Mutex
	loaded bool
	items  []*TaskItem
}

func NewTaskList(api TaskAPI, alerter Alerter, title string) *TaskList {
	return &TaskList{api: api, alerter: alerter, title: title}
}

// Load fetches the tasks on first use only. A failed fetch is alerted and
// still counts as loaded, leaving the list empty.
func (l *TaskList) Load(ctx context.Context) {
	l.once.Do(func() { l.fetch(ctx) })
}

func (l *TaskList) fetch(ctx context.Context) {
	result := l.api.GetAllTasks(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = true
	if !result.Success {
		l.alerter.Alert("Failed to fetch tasks.")
		return
	}
	l.items = make([]*TaskItem, 0, len(result.Data))
	for _, task := range result.Data {
		l.items = append(l.items, NewTaskItem(l.api, l.alerter, task))
	}
}

func (l *TaskList) Items() []*TaskItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*TaskItem(nil), l.items...)
}

// Find returns the item for the task with the given id.
func (l *TaskList) Find(id string) *TaskItem {
	for _, item := range l.Items() {
		if item.Task().ID == id {
			return item
		}
	}
	return nil
}

func (l *TaskList) Render(w io.Writer) {
	l.mu.Lock()
	loaded := l.loaded
	l.mu.Unlock()

	fmt.Fprintln(w, l.title)
	items := l.Items()
	if !loaded || len(items) == 0 {
		fmt.Fprintln(w, EmptyListPlaceholder)
		return
	}
	for _, item := range items {
		item.Render(w)
	}
}
