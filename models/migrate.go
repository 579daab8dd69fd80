package models

import "gorm.io/gorm"

// AutoMigrate creates missing tables, indexes and foreign keys.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{}, &Like{}, &Student{}, &LearningGoal{})
}
