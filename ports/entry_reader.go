package ports

import (
	"context"

	"diarylens/domain/diary"
)

// EntryReader provides read-only access to the imported diary corpus.
// Implementations return entries in a stable order; callers must not modify
// the returned slice's entries.
type EntryReader interface {
	ListEntries(ctx context.Context) ([]diary.Entry, error)
}

// EntryRepository stores imported entries. Content and Date are fixed once
// saved; only comments and the favorite flag change afterwards.
type EntryRepository interface {
	EntryReader

	// SaveEntries inserts entries, skipping IDs that already exist
	SaveEntries(ctx context.Context, entries []diary.Entry) (int, error)

	// GetEntry returns core.ErrEntryNotFound when id is unknown
	GetEntry(ctx context.Context, id string) (*diary.Entry, error)

	AddComment(ctx context.Context, id string, comment diary.Comment) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
}
