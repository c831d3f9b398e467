package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskJSON_NoAssignee(t *testing.T) {
	task := Task{
		ID:          uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"),
		Title:       "Water plants",
		DateCreated: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"_id": "123e4567-e89b-12d3-a456-426614174000",
		"title": "Water plants",
		"isChecked": false,
		"dateCreated": "2026-03-01T09:30:00Z",
		"assignee": null
	}`, string(data))
}

func TestTaskJSON_WithAssignee(t *testing.T) {
	userID := uuid.New()
	task := Task{
		ID:          uuid.New(),
		Title:       "Review PR",
		Description: "the big one",
		IsChecked:   true,
		DateCreated: time.Now().UTC(),
		AssigneeID:  &userID,
		Assignee:    &User{ID: userID, Name: "Grace", ProfilePictureURL: "https://example.com/g.png"},
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "AssigneeID")
	assignee, ok := decoded["assignee"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, userID.String(), assignee["_id"])
	assert.Equal(t, "Grace", assignee["name"])
	assert.Equal(t, "https://example.com/g.png", assignee["profilePictureURL"])
}

func TestUserJSON_OmitsEmptyPicture(t *testing.T) {
	data, err := json.Marshal(User{ID: uuid.Nil, Name: "Linus"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "profilePictureURL")
}

func TestBeforeCreate_AssignsIDOnce(t *testing.T) {
	task := &Task{}
	require.NoError(t, task.BeforeCreate(nil))
	first := task.ID
	assert.NotEqual(t, uuid.Nil, first)

	require.NoError(t, task.BeforeCreate(nil))
	assert.Equal(t, first, task.ID)

	user := &User{}
	require.NoError(t, user.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, user.ID)
}
