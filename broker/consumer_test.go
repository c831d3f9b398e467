package broker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockSubscriber records handlers and lets tests deliver messages to them.
type MockSubscriber struct {
	handlers map[string]func(Message)
	failOn   string
}

func NewMockSubscriber() *MockSubscriber {
	return &MockSubscriber{handlers: make(map[string]func(Message))}
}

func (m *MockSubscriber) Subscribe(subject string, handler func(Message)) error {
	if subject == m.failOn {
		return errors.New("subscribe failed")
	}
	m.handlers[subject] = handler
	return nil
}

func (m *MockSubscriber) Deliver(subject string, data []byte) {
	if h, ok := m.handlers[subject]; ok {
		h(Message{Subject: subject, Data: data})
	}
}

func TestSubscribeAll(t *testing.T) {
	sub := NewMockSubscriber()
	messageChan := make(chan Message, 2)

	err := SubscribeAll(sub, AllTopics, func(msg Message) { messageChan <- msg })
	require.NoError(t, err)

	go sub.Deliver(UserEventsTopic, []byte("mock_value"))

	select {
	case received := <-messageChan:
		assert.Equal(t, UserEventsTopic, received.Subject)
		assert.Equal(t, "mock_value", string(received.Data))
	case <-time.After(1 * time.Second):
		t.Fatal("Timed out waiting for message")
	}
}

func TestSubscribeAll_StopsOnError(t *testing.T) {
	sub := NewMockSubscriber()
	sub.failOn = UserEventsTopic

	err := SubscribeAll(sub, AllTopics, func(Message) {})
	assert.Error(t, err)
	assert.Contains(t, sub.handlers, TaskEventsTopic)
}
