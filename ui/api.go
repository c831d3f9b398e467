package ui

import (
	"context"
	"fmt"
	"io"

	"taskboard/client"
)

// TaskAPI is the part of the client data layer the components use.
type TaskAPI interface {
	GetAllTasks(ctx context.Context) client.Result[[]client.Task]
	GetTask(ctx context.Context, id string) client.Result[client.Task]
	CreateTask(ctx context.Context, draft client.TaskDraft) client.Result[client.Task]
	UpdateTask(ctx context.Context, task client.Task) client.Result[client.Task]
}

// Alerter shows a failure to the user and returns once it has been shown.
type Alerter interface {
	Alert(message string)
}

// WriterAlerter writes alerts to W, one per line.
type WriterAlerter struct {
	W io.Writer
}

func (a WriterAlerter) Alert(message string) {
	fmt.Fprintf(a.W, "error: %s\n", message)
}
