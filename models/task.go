package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a to-do item. AssigneeID is a weak reference: the user it points
// at may no longer exist, in which case Assignee stays nil after preload.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	IsChecked   bool       `gorm:"not null;default:false" json:"isChecked"`
	DateCreated time.Time  `gorm:"not null;index" json:"dateCreated"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Assignee    *User      `gorm:"foreignKey:AssigneeID" json:"assignee"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TaskInput carries the writable fields of a task for create and replace.
// ID is only consulted on replace, where it must match the path id.
type TaskInput struct {
	ID          string
	Title       string
	Description string
	IsChecked   bool
	Assignee    string
}

type UserInput struct {
	Name              string
	ProfilePictureURL string
}

// DeleteResult acknowledges a delete whether or not anything was removed.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
