package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"diarylens/domain/core"
	"diarylens/domain/diary"
	"diarylens/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pq error code for foreign_key_violation
const foreignKeyViolation = "23503"

// EntryRepositoryImpl implements EntryRepository for PostgreSQL
type EntryRepositoryImpl struct {
	db *sqlx.DB
}

// NewEntryRepository creates a new PostgreSQL entry repository
func NewEntryRepository(db *sqlx.DB) ports.EntryRepository {
	return &EntryRepositoryImpl{db: db}
}

type entryRow struct {
	ID        string       `db:"id"`
	EntryDate sql.NullTime `db:"entry_date"`
	Content   string       `db:"content"`
	Source    string       `db:"source"`
	Favorite  bool         `db:"favorite"`
	CreatedAt time.Time    `db:"created_at"`
}

type commentRow struct {
	EntryID   string    `db:"entry_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func toRow(e diary.Entry) entryRow {
	row := entryRow{
		ID:        e.ID.String(),
		Content:   e.Content,
		Source:    e.Source,
		Favorite:  e.Favorite,
		CreatedAt: e.CreatedAt,
	}
	if row.ID == "" {
		row.ID = core.NewEntryID().String()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if e.Dated() {
		row.EntryDate = sql.NullTime{Time: core.CivilDate(*e.Date), Valid: true}
	}
	return row
}

func (r entryRow) toEntry() diary.Entry {
	e := diary.Entry{
		ID:        core.EntryID(r.ID),
		Content:   r.Content,
		Source:    r.Source,
		Favorite:  r.Favorite,
		CreatedAt: r.CreatedAt,
	}
	if r.EntryDate.Valid {
		d := core.CivilDate(r.EntryDate.Time)
		e.Date = &d
	}
	return e
}

// ListEntries returns every entry ordered by date (undated last) with its comments
func (r *EntryRepositoryImpl) ListEntries(ctx context.Context) ([]diary.Entry, error) {
	var rows []entryRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, entry_date, content, source, favorite, created_at
		FROM diary_entries
		ORDER BY entry_date ASC NULLS LAST, created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	comments, err := r.commentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]diary.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.toEntry()
		entries[i].Comments = comments[row.ID]
	}
	return entries, nil
}

// GetEntry retrieves one entry by ID
func (r *EntryRepositoryImpl) GetEntry(ctx context.Context, id string) (*diary.Entry, error) {
	var row entryRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, entry_date, content, source, favorite, created_at
		FROM diary_entries
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	comments, err := r.commentsFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	entry := row.toEntry()
	entry.Comments = comments[id]
	return &entry, nil
}

func (r *EntryRepositoryImpl) commentsFor(ctx context.Context, ids []string) (map[string][]diary.Comment, error) {
	var rows []commentRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT entry_id, content, created_at
		FROM diary_comments
		WHERE entry_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[string][]diary.Comment)
	for _, c := range rows {
		out[c.EntryID] = append(out[c.EntryID], diary.Comment{Content: c.Content, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// SaveEntries inserts entries in one transaction and returns how many were new
func (r *EntryRepositoryImpl) SaveEntries(ctx context.Context, entries []diary.Entry) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, e := range entries {
		row := toRow(e)
		res, err := tx.NamedExecContext(ctx, `
			INSERT INTO diary_entries (id, entry_date, content, source, favorite, created_at)
			VALUES (:id, :entry_date, :content, :source, :favorite, :created_at)
			ON CONFLICT (id) DO NOTHING
		`, row)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		inserted++

		for _, c := range e.Comments {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO diary_comments (entry_id, content, created_at)
				VALUES ($1, $2, $3)
			`, row.ID, c.Content, c.CreatedAt); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// AddComment appends a comment to an existing entry
func (r *EntryRepositoryImpl) AddComment(ctx context.Context, id string, comment diary.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diary_comments (entry_id, content, created_at)
		VALUES ($1, $2, $3)
	`, id, comment.Content, comment.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return core.ErrEntryNotFound
	}
	return err
}

// SetFavorite flags or unflags an entry
func (r *EntryRepositoryImpl) SetFavorite(ctx context.Context, id string, favorite bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE diary_entries SET favorite = $2 WHERE id = $1
	`, id, favorite)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrEntryNotFound
	}
	return nil
}
