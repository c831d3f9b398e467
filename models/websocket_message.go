package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type WebSocketMessageType string

const EventMessage WebSocketMessageType = "event"

// StandardMessage is the envelope pushed to websocket clients.
type StandardMessage struct {
	ID           string               `json:"id"`
	Type         WebSocketMessageType `json:"type"`
	Event        string               `json:"event,omitempty"`
	Timestamp    time.Time            `json:"timestamp"`
	Payload      json.RawMessage      `json:"payload"`
	ResourceID   string               `json:"resource_id,omitempty"`
	ResourceType string               `json:"resource_type,omitempty"`
}

func NewStandardMessage(msgType WebSocketMessageType, event string, payload json.RawMessage) *StandardMessage {
	return &StandardMessage{
		ID:        uuid.New().String(),
		Type:      msgType,
		Event:     event,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func (m *StandardMessage) WithResource(resourceType string, resourceID string) *StandardMessage {
	m.ResourceType = resourceType
	m.ResourceID = resourceID
	return m
}

// EventToMessage wraps a domain event for delivery to websocket clients.
func EventToMessage(e *Event) *StandardMessage {
	msg := NewStandardMessage(EventMessage, e.Event, e.Data)
	var ref struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(e.Data, &ref); err == nil && ref.ID != "" {
		msg.WithResource(e.Entity, ref.ID)
	}
	return msg
}
