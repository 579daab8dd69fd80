package services

import (
	"context"
	"path/filepath"
	"testing"

	"journify/config"
	"journify/models"

	"gorm.io/gorm"
)

// setupTestDB opens a migrated SQLite database in a per-test directory.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenDB(config.DatabaseConfig{
		Driver:   "sqlite",
		Dsn:      filepath.Join(t.TempDir(), "journify_test.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

func setupTestStore(t *testing.T) *JournalStore {
	t.Helper()
	return NewJournalStore(setupTestDB(t))
}

func createTestEntry(t *testing.T, store *JournalStore, title string, tags ...string) uint {
	t.Helper()
	id, err := store.CreateEntry(context.Background(), title, "content of "+title, nil, tags)
	if err != nil {
		t.Fatalf("CreateEntry(%q) failed: %v", title, err)
	}
	return id
}

func countLikeRows(t *testing.T, db *gorm.DB, entryID uint, voterID string) int64 {
	t.Helper()
	var n int64
	err := db.Model(&models.Like{}).Where("entry_id = ? AND voter_id = ?", entryID, voterID).Count(&n).Error
	if err != nil {
		t.Fatalf("counting like rows failed: %v", err)
	}
	return n
}
