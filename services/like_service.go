package services

import (
	"context"
	"errors"
	"log"
	"time"

	"journify/models"
)

// LikeStore is the storage the like service needs.
type LikeStore interface {
	EntryExists(ctx context.Context, id uint) (bool, error)
	FindLike(ctx context.Context, entryID uint, voterID string) (models.Like, bool, error)
	InsertLike(ctx context.Context, entryID uint, voterID string) (uint, error)
	DeleteLike(ctx context.Context, entryID uint, voterID string) (int64, error)
	CountLikes(ctx context.Context, entryID uint) (int64, error)
	TopEntries(ctx context.Context, n int) ([]EntryLikes, error)
	GetEntries(ctx context.Context, ids []uint) (map[uint]models.Entry, error)
}

type LikeResult struct {
	AlreadyLiked bool
	LikesCount   int64
}

type UnlikeResult struct {
	WasLiked   bool
	LikesCount int64
}

// RankedEntry is one leaderboard row.
type RankedEntry struct {
	Rank       int          `json:"rank"`
	LikesCount int64        `json:"likes_count"`
	Entry      models.Entry `json:"entry"`
}

// LikeService implements idempotent like/unlike toggles. Duplicate likes
// are rejected by the store's unique index, never by a check-then-insert.
type LikeService struct {
	store  LikeStore
	ranker Ranker
	events Publisher
	now    func() time.Time
}

// NewLikeService builds the service. ranker and events may be nil.
func NewLikeService(store LikeStore, ranker Ranker, events Publisher) *LikeService {
	return &LikeService{store: store, ranker: ranker, events: events, now: time.Now}
}

func (s *LikeService) Like(ctx context.Context, entryID uint, voterID string) (LikeResult, error) {
	if err := s.requireEntry(ctx, entryID); err != nil {
		return LikeResult{}, err
	}

	already := false
	if _, err := s.store.InsertLike(ctx, entryID, voterID); err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			already = true
		case errors.Is(err, ErrReference):
			// entry removed after the existence check
			return LikeResult{}, ErrNotFound
		default:
			return LikeResult{}, err
		}
	}

	count, err := s.store.CountLikes(ctx, entryID)
	if err != nil {
		return LikeResult{}, err
	}

	if !already {
		s.rank(entryID, 1)
		s.publish(ctx, EventEntryLiked, entryID, voterID, count)
	}
	return LikeResult{AlreadyLiked: already, LikesCount: count}, nil
}

func (s *LikeService) Unlike(ctx context.Context, entryID uint, voterID string) (UnlikeResult, error) {
	if err := s.requireEntry(ctx, entryID); err != nil {
		return UnlikeResult{}, err
	}

	removed, err := s.store.DeleteLike(ctx, entryID, voterID)
	if err != nil {
		return UnlikeResult{}, err
	}

	count, err := s.store.CountLikes(ctx, entryID)
	if err != nil {
		return UnlikeResult{}, err
	}

	if removed > 0 {
		s.rank(entryID, -1)
		s.publish(ctx, EventEntryUnliked, entryID, voterID, count)
	}
	return UnlikeResult{WasLiked: removed > 0, LikesCount: count}, nil
}

func (s *LikeService) HasLiked(ctx context.Context, entryID uint, voterID string) (bool, error) {
	if err := s.requireEntry(ctx, entryID); err != nil {
		return false, err
	}
	_, ok, err := s.store.FindLike(ctx, entryID, voterID)
	return ok, err
}

func (s *LikeService) LikesCount(ctx context.Context, entryID uint) (int64, error) {
	if err := s.requireEntry(ctx, entryID); err != nil {
		return 0, err
	}
	return s.store.CountLikes(ctx, entryID)
}

// TopEntries returns up to n entries, most liked first. The Redis
// leaderboard is used when configured and reachable, the store otherwise.
func (s *LikeService) TopEntries(ctx context.Context, n int) ([]RankedEntry, error) {
	if n <= 0 {
		return []RankedEntry{}, nil
	}

	if s.ranker != nil {
		scores, err := s.ranker.Top(n)
		if err == nil {
			return s.fromScores(ctx, scores)
		}
		log.Printf("ranker unavailable, ranking from storage: %v", err)
	}

	rows, err := s.store.TopEntries(ctx, n)
	if err != nil {
		return nil, err
	}
	out := make([]RankedEntry, 0, len(rows))
	for i, r := range rows {
		out = append(out, RankedEntry{Rank: i + 1, LikesCount: r.LikesCount, Entry: r.Entry})
	}
	return out, nil
}

func (s *LikeService) fromScores(ctx context.Context, scores []RankScore) ([]RankedEntry, error) {
	ids := make([]uint, len(scores))
	for i, sc := range scores {
		ids[i] = sc.EntryID
	}
	entries, err := s.store.GetEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]RankedEntry, 0, len(scores))
	for _, sc := range scores {
		e, ok := entries[sc.EntryID]
		if !ok {
			continue
		}
		out = append(out, RankedEntry{Rank: len(out) + 1, LikesCount: sc.LikesCount, Entry: e})
	}
	return out, nil
}

func (s *LikeService) requireEntry(ctx context.Context, entryID uint) error {
	ok, err := s.store.EntryExists(ctx, entryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// rank applies an effective transition to the leaderboard. No-op toggles
// never reach it.
func (s *LikeService) rank(entryID uint, delta int64) {
	if s.ranker == nil {
		return
	}
	if err := s.ranker.Incr(entryID, delta); err != nil {
		log.Printf("failed to update rank for entry %d: %v", entryID, err)
	}
}

func (s *LikeService) publish(ctx context.Context, typ string, entryID uint, voterID string, count int64) {
	if s.events == nil {
		return
	}
	ev := LikeEvent{
		Type:       typ,
		EntryID:    entryID,
		VoterID:    voterID,
		LikesCount: count,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("failed to publish %s for entry %d: %v", typ, entryID, err)
	}
}
