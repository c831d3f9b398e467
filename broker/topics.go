package broker

const (
	TaskEventsTopic = "task_events"
	UserEventsTopic = "user_events"
)

// AllTopics lists every subject the API publishes to.
var AllTopics = []string{TaskEventsTopic, UserEventsTopic}

func TopicForEntity(entity string) string {
	switch entity {
	case "user":
		return UserEventsTopic
	default:
		return TaskEventsTopic
	}
}
