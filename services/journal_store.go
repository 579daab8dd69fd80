package services

import (
	"context"
	"strings"

	"journify/models"

	"gorm.io/gorm"
)

// EntryLikes pairs an entry with its like count.
type EntryLikes struct {
	models.Entry
	LikesCount int64 `json:"likes_count"`
}

// JournalStore persists entries and likes behind one pooled handle.
type JournalStore struct {
	db *gorm.DB
}

func NewJournalStore(db *gorm.DB) *JournalStore {
	return &JournalStore{db: db}
}

func (s *JournalStore) CreateEntry(ctx context.Context, title, content string, location *string, tags []string) (uint, error) {
	entry := models.Entry{
		Title:    title,
		Content:  content,
		Location: location,
		Tags:     normalizeTags(tags),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return 0, castErr(err)
	}
	return entry.ID, nil
}

// ListEntries returns every entry, newest first.
func (s *JournalStore) ListEntries(ctx context.Context) ([]models.Entry, error) {
	entries := make([]models.Entry, 0)
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, castErr(err)
	}
	return entries, nil
}

func (s *JournalStore) GetEntry(ctx context.Context, id uint) (models.Entry, error) {
	var entry models.Entry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return models.Entry{}, castErr(err)
	}
	return entry, nil
}

// GetEntries loads the entries with the given ids, keyed by id. Missing ids
// are absent from the result.
func (s *JournalStore) GetEntries(ctx context.Context, ids []uint) (map[uint]models.Entry, error) {
	out := make(map[uint]models.Entry, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var entries []models.Entry
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&entries).Error; err != nil {
		return nil, castErr(err)
	}
	for _, e := range entries {
		out[e.ID] = e
	}
	return out, nil
}

// DeleteEntry removes the entry together with its likes.
func (s *JournalStore) DeleteEntry(ctx context.Context, id uint) error {
	return castErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Entry{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	}))
}

func (s *JournalStore) EntryExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Entry{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, castErr(err)
	}
	return n > 0, nil
}

// FindLike reports the like for the pair, if any.
func (s *JournalStore) FindLike(ctx context.Context, entryID uint, voterID string) (models.Like, bool, error) {
	var likes []models.Like
	err := s.db.WithContext(ctx).
		Where("entry_id = ? AND voter_id = ?", entryID, voterID).
		Limit(1).
		Find(&likes).Error
	if err != nil {
		return models.Like{}, false, castErr(err)
	}
	if len(likes) == 0 {
		return models.Like{}, false, nil
	}
	return likes[0], true, nil
}

// InsertLike stores a like. An existing like for the pair fails with
// ErrDuplicate from the unique index; a missing entry fails with
// ErrReference.
func (s *JournalStore) InsertLike(ctx context.Context, entryID uint, voterID string) (uint, error) {
	like := models.Like{EntryID: entryID, VoterID: voterID}
	if err := s.db.WithContext(ctx).Create(&like).Error; err != nil {
		return 0, castErr(err)
	}
	return like.ID, nil
}

// DeleteLike removes the like for the pair and returns the number of rows
// removed, 0 or 1.
func (s *JournalStore) DeleteLike(ctx context.Context, entryID uint, voterID string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("entry_id = ? AND voter_id = ?", entryID, voterID).
		Delete(&models.Like{})
	if res.Error != nil {
		return 0, castErr(res.Error)
	}
	return res.RowsAffected, nil
}

func (s *JournalStore) CountLikes(ctx context.Context, entryID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).Where("entry_id = ?", entryID).Count(&n).Error
	if err != nil {
		return 0, castErr(err)
	}
	return n, nil
}

// CountLikesByEntry counts likes for each id. Entries without likes map to 0.
func (s *JournalStore) CountLikesByEntry(ctx context.Context, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	for _, id := range ids {
		counts[id] = 0
	}

	var rows []struct {
		EntryID uint
		Total   int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("entry_id, COUNT(*) AS total").
		Where("entry_id IN ?", ids).
		Group("entry_id").
		Scan(&rows).Error
	if err != nil {
		return nil, castErr(err)
	}
	for _, r := range rows {
		counts[r.EntryID] = r.Total
	}
	return counts, nil
}

// TopEntries ranks entries by like count, most liked first. Entries without
// likes are not ranked.
func (s *JournalStore) TopEntries(ctx context.Context, n int) ([]EntryLikes, error) {
	var rows []struct {
		EntryID uint
		Total   int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("entry_id, COUNT(*) AS total").
		Group("entry_id").
		Order("total DESC").
		Order("entry_id ASC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, castErr(err)
	}

	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.EntryID
	}
	entries, err := s.GetEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]EntryLikes, 0, len(rows))
	for _, r := range rows {
		if e, ok := entries[r.EntryID]; ok {
			out = append(out, EntryLikes{Entry: e, LikesCount: r.Total})
		}
	}
	return out, nil
}

// normalizeTags trims tags, drops empty ones and keeps the first occurrence
// of each.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
