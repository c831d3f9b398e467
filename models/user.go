package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an assignable person. Users are created once and never modified.
type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Name              string    `gorm:"not null" json:"name"`
	ProfilePictureURL string    `json:"profilePictureURL,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
