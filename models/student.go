package models

import "time"

type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Grade     string    `gorm:"size:10;not null" json:"grade"`
	CreatedAt time.Time `json:"created_at"`

	Goals []LearningGoal `gorm:"constraint:OnDelete:CASCADE" json:"goals"`
}

type LearningGoal struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID uint   `gorm:"not null;index" json:"-"`
	GoalText  string `gorm:"type:text;not null" json:"goal_text"`
	Baseline  string `gorm:"type:text" json:"baseline"`
}
