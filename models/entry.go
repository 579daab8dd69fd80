package models

import (
	"time"

	"gorm.io/gorm"
)

// Entry is one journal record. Deleting it removes its likes.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:256;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Location  *string   `gorm:"size:256" json:"location"`
	Tags      []string  `gorm:"type:text;serializer:json" json:"tags"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Likes []Like `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// AfterFind keeps Tags an empty list rather than null in responses.
func (e *Entry) AfterFind(tx *gorm.DB) error {
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return nil
}
