package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"
	"time"

	"diarylens/domain/core"
	"diarylens/domain/diary"
	"diarylens/internal/errors"
	"diarylens/internal/lexicon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEntryRepository is a mock implementation of ports.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) ListEntries(ctx context.Context) ([]diary.Entry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]diary.Entry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntries(ctx context.Context, entries []diary.Entry) (int, error) {
	args := m.Called(ctx, entries)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) GetEntry(ctx context.Context, id string) (*diary.Entry, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*diary.Entry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntryRepository) AddComment(ctx context.Context, id string, comment diary.Comment) error {
	return m.Called(ctx, id, comment).Error(0)
}

func (m *MockEntryRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return m.Called(ctx, id, favorite).Error(0)
}

func TestShowEntry(t *testing.T) {
	ctx := context.Background()
	repo := &MockEntryRepository{}
	want := &diary.Entry{ID: "e1", Content: "今日は晴れ。"}
	repo.On("GetEntry", ctx, "e1").Return(want, nil)
	repo.On("GetEntry", ctx, "missing").Return(nil, core.ErrEntryNotFound)
	repo.On("GetEntry", ctx, "broken").Return(nil, stderrors.New("connection reset"))

	got, err := showEntry(ctx, repo, "e1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = showEntry(ctx, repo, "missing")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	_, err = showEntry(ctx, repo, "broken")
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))

	_, err = showEntry(ctx, repo, "  ")
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	repo.AssertNumberOfCalls(t, "GetEntry", 3)
}

func TestCommentOnEntry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &MockEntryRepository{}
	repo.On("AddComment", ctx, "e1", diary.Comment{Content: "読み返した", CreatedAt: now}).Return(nil)
	repo.On("AddComment", ctx, "gone", mock.Anything).Return(core.ErrEntryNotFound)

	require.NoError(t, commentOnEntry(ctx, repo, "e1", "  読み返した ", now))

	err := commentOnEntry(ctx, repo, "gone", "note", now)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	err = commentOnEntry(ctx, repo, "e1", " ", now)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	repo.AssertExpectations(t)
}

func TestFavoriteEntry(t *testing.T) {
	ctx := context.Background()
	repo := &MockEntryRepository{}
	repo.On("SetFavorite", ctx, "e1", false).Return(nil)
	repo.On("SetFavorite", ctx, "gone", true).Return(core.ErrEntryNotFound)

	require.NoError(t, favoriteEntry(ctx, repo, "e1", false))
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(favoriteEntry(ctx, repo, "gone", true)))
	repo.AssertExpectations(t)
}

func TestWriteLexicon(t *testing.T) {
	store := lexicon.Default()

	var lookup bytes.Buffer
	writeLexicon(&lookup, store, []string{"疲れ", "zzz"})
	assert.Contains(t, lookup.String(), "疲れ: ")
	assert.Contains(t, lookup.String(), "negative")
	assert.Contains(t, lookup.String(), "physical_symptom")
	assert.Contains(t, lookup.String(), "zzz: (none)")

	var listing bytes.Buffer
	writeLexicon(&listing, store, nil)
	for _, c := range store.Categories() {
		assert.Contains(t, listing.String(), string(c))
	}
}
