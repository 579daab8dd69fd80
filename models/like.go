package models

import "time"

// Like is one voter's approval of one entry. At most one row exists per
// (EntryID, VoterID); rows are deleted, never soft-deleted, so the unique
// index does not block a later like from the same voter.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EntryID   uint      `gorm:"not null;uniqueIndex:idx_likes_entry_voter" json:"entry_id"`
	VoterID   string    `gorm:"size:128;not null;uniqueIndex:idx_likes_entry_voter" json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`
}
