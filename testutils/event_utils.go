package testutils

import (
	"sync"

	"taskboard/models"
)

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	events []*models.Event
}

func (m *MockPublisher) Publish(event *models.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockPublisher) Events() []*models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Event(nil), m.events...)
}

// EventTypes returns the type of every recorded event, in order.
func (m *MockPublisher) EventTypes() []string {
	events := m.Events()
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Event)
	}
	return types
}
