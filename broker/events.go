package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"

	UserCreated EventType = "user.created"
)
