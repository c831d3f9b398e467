package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	testCases := []struct {
		name    string
		event   string
		entity  string
		data    interface{}
		wantErr bool
	}{
		{
			name:   "Valid event",
			event:  "task.created",
			entity: "task",
			data:   map[string]interface{}{"_id": "abc", "title": "Write docs"},
		},
		{
			name:    "Invalid JSON data",
			event:   "task.created",
			entity:  "task",
			data:    make(chan int),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := NewEvent(tc.event, tc.entity, tc.data)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, event)
			assert.NotEqual(t, uuid.Nil, event.ID)
			assert.Equal(t, tc.event, event.Event)
			assert.Equal(t, tc.entity, event.Entity)
			assert.Equal(t, 1, event.Version)
			assert.False(t, event.Timestamp.IsZero())
		})
	}
}

func TestEventJSONRoundTrip(t *testing.T) {
	event, err := NewEvent("user.created", "user", map[string]string{"name": "Ada"})
	require.NoError(t, err)

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, decoded.FromJSON(data))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, "user.created", decoded.Event)
	assert.JSONEq(t, `{"name":"Ada"}`, string(decoded.Data))
}

func TestEventToMessage(t *testing.T) {
	id := uuid.New()
	event, err := NewEvent("task.updated", "task", Task{ID: id, Title: "Ship it"})
	require.NoError(t, err)

	msg := EventToMessage(event)
	assert.Equal(t, EventMessage, msg.Type)
	assert.Equal(t, "task.updated", msg.Event)
	assert.Equal(t, "task", msg.ResourceType)
	assert.Equal(t, id.String(), msg.ResourceID)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "Ship it", payload["title"])
}
