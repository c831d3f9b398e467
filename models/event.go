package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is a change notification for a single resource. Events are not
// persisted; they travel over the broker and the websocket feed.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Event     string          `json:"event"`
	Version   int             `json:"version"`
	Entity    string          `json:"entity"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func NewEvent(event, entity string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Event:     event,
		Version:   1,
		Entity:    entity,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Event) FromJSON(data []byte) error {
	return json.Unmarshal(data, e)
}
