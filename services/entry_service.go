package services

import (
	"context"
	"fmt"
	"log"
	"strings"
)

type NewEntry struct {
	Title    string
	Content  string
	Location *string
	Tags     []string
}

// EntryService is the journal record store used by the HTTP surface.
type EntryService struct {
	store  *JournalStore
	ranker Ranker
}

// NewEntryService builds the service. ranker may be nil.
func NewEntryService(store *JournalStore, ranker Ranker) *EntryService {
	return &EntryService{store: store, ranker: ranker}
}

func (s *EntryService) Create(ctx context.Context, in NewEntry) (uint, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return 0, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	location := in.Location
	if location != nil {
		if l := strings.TrimSpace(*location); l != "" {
			location = &l
		} else {
			location = nil
		}
	}
	return s.store.CreateEntry(ctx, title, content, location, in.Tags)
}

// List returns every entry, newest first, with its like count.
func (s *EntryService) List(ctx context.Context) ([]EntryLikes, error) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	counts, err := s.store.CountLikesByEntry(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]EntryLikes, len(entries))
	for i, e := range entries {
		out[i] = EntryLikes{Entry: e, LikesCount: counts[e.ID]}
	}
	return out, nil
}

func (s *EntryService) Get(ctx context.Context, id uint) (EntryLikes, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return EntryLikes{}, err
	}
	count, err := s.store.CountLikes(ctx, id)
	if err != nil {
		return EntryLikes{}, err
	}
	return EntryLikes{Entry: entry, LikesCount: count}, nil
}

func (s *EntryService) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		return err
	}
	if s.ranker != nil {
		if err := s.ranker.Remove(id); err != nil {
			log.Printf("failed to remove entry %d from rank: %v", id, err)
		}
	}
	return nil
}
