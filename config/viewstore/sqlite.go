package viewstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS views (
	id         INTEGER PRIMARY KEY,
	document   TEXT    NOT NULL UNIQUE,
	open       TEXT    NOT NULL DEFAULT '',
	focused    INTEGER NOT NULL DEFAULT -1,
	mode       TEXT    NOT NULL DEFAULT '',
	updated_at TEXT    NOT NULL DEFAULT ''
);
`

// SQLiteStore is a Store implementation backed by a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and runs
// schema migrations. Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if dbPath == ":memory:" {
		// Every connection would get its own empty database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run schema migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save records v, replacing any earlier view of the same document.
func (s *SQLiteStore) Save(v View) error {
	if v.Document == "" {
		return fmt.Errorf("save view: document is required")
	}
	const q = `
		INSERT INTO views (document, open, focused, mode, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(document) DO UPDATE SET
			open = excluded.open,
			focused = excluded.focused,
			mode = excluded.mode,
			updated_at = excluded.updated_at
	`
	_, err := s.db.Exec(q, v.Document, formatIndices(v.Open), v.Focused, v.Mode, formatTime(s.now()))
	if err != nil {
		return fmt.Errorf("save view: %w", err)
	}
	return nil
}

// Load returns the saved view of document, or ErrNotFound.
func (s *SQLiteStore) Load(document string) (View, error) {
	const q = `
		SELECT document, open, focused, mode, updated_at
		FROM views
		WHERE document = ?
	`
	v, err := scanView(s.db.QueryRow(q, document))
	if errors.Is(err, sql.ErrNoRows) {
		return View{}, fmt.Errorf("%w: %s", ErrNotFound, document)
	}
	return v, err
}

// Delete forgets the view of document. Unknown documents are not an error.
func (s *SQLiteStore) Delete(document string) error {
	if _, err := s.db.Exec(`DELETE FROM views WHERE document = ?`, document); err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	return nil
}

// DeleteAll forgets every view and returns how many were removed.
func (s *SQLiteStore) DeleteAll() (int64, error) {
	result, err := s.db.Exec(`DELETE FROM views`)
	if err != nil {
		return 0, fmt.Errorf("delete views: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete views rows affected: %w", err)
	}
	return n, nil
}

// List returns every saved view, sorted by document.
func (s *SQLiteStore) List() ([]View, error) {
	const q = `
		SELECT document, open, focused, mode, updated_at
		FROM views
		ORDER BY document ASC
	`
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate views: %w", err)
	}
	return views, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanView(row scanner) (View, error) {
	var document, open, mode, updatedAt string
	var focused int
	if err := row.Scan(&document, &open, &focused, &mode, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return View{}, err
		}
		return View{}, fmt.Errorf("scan view: %w", err)
	}
	return View{
		Document:  document,
		Open:      parseIndices(open),
		Focused:   focused,
		Mode:      mode,
		UpdatedAt: parseTime(updatedAt),
	}, nil
}

// formatIndices stores panel indices as a comma separated list.
func formatIndices(is []int) string {
	parts := make([]string, len(is))
	for i, n := range is {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// parseIndices skips anything that is not a non-negative integer.
func parseIndices(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}

// formatTime formats a time.Time as RFC3339 for storage. Zero time returns empty string.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses an RFC3339 string. Returns zero time on empty or invalid input.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
