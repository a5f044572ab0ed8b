// Package store persists saved snippets in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no snippet has the requested id.
var ErrNotFound = errors.New("snippet not found")

// timeLayout is fixed-width so stored timestamps sort lexicographically in
// time order; RFC3339Nano drops trailing zeros and breaks that.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Snippet is a saved remix output.
type Snippet struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	ContentType string    `json:"contentType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SnippetStore wraps the SQLite handle. Safe for concurrent use; database/sql
// serializes access to the underlying connection pool.
type SnippetStore struct {
	db *sql.DB
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*SnippetStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SnippetStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SnippetStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snippets (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		content_type TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snippets_created_at ON snippets(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SnippetStore) Close() error {
	return s.db.Close()
}

// List returns all snippets, newest first.
func (s *SnippetStore) List(ctx context.Context) ([]Snippet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, content_type, created_at FROM snippets ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	defer rows.Close()

	var snippets []Snippet
	for rows.Next() {
		sn, err := scanSnippet(rows)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, sn)
	}
	return snippets, rows.Err()
}

// Get returns the snippet with the given id, or ErrNotFound.
func (s *SnippetStore) Get(ctx context.Context, id string) (Snippet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, content, content_type, created_at FROM snippets WHERE id = ?`, id)
	sn, err := scanSnippet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snippet{}, ErrNotFound
	}
	return sn, err
}

// Insert saves a new snippet and returns it with its generated id.
func (s *SnippetStore) Insert(ctx context.Context, content, contentType string) (Snippet, error) {
	sn := Snippet{
		ID:          uuid.NewString(),
		Content:     content,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snippets (id, content, content_type, created_at) VALUES (?, ?, ?, ?)`,
		sn.ID, sn.Content, sn.ContentType, sn.CreatedAt.Format(timeLayout))
	if err != nil {
		return Snippet{}, fmt.Errorf("failed to insert snippet: %w", err)
	}
	return sn, nil
}

// Update replaces a snippet's content and returns the updated row.
func (s *SnippetStore) Update(ctx context.Context, id, content string) (Snippet, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE snippets SET content = ? WHERE id = ?`, content, id)
	if err != nil {
		return Snippet{}, fmt.Errorf("failed to update snippet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Snippet{}, err
	}
	if n == 0 {
		return Snippet{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a snippet, or returns ErrNotFound.
func (s *SnippetStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnippet(row rowScanner) (Snippet, error) {
	var sn Snippet
	var createdAt string
	if err := row.Scan(&sn.ID, &sn.Content, &sn.ContentType, &createdAt); err != nil {
		return Snippet{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Snippet{}, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	sn.CreatedAt = t
	return sn, nil
}
