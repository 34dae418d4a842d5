package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// History records which folders have been annotated and how far along each
// one is, so the recent command can pick up where a session left off. It is
// stored per-user, outside any working folder.
type History struct {
	db *sql.DB
}

// HistoryEntry is one recently opened folder.
type HistoryEntry struct {
	Folder         string
	ImageCount     int
	AnnotatedCount int
	LastOpened     time.Time
}

// DefaultHistoryPath returns the per-user history database location.
func DefaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".vqa-annotator", "history.db"), nil
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS folders (
		path TEXT PRIMARY KEY,
		image_count INTEGER NOT NULL,
		annotated_count INTEGER NOT NULL,
		last_opened TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Touch upserts the entry for folder with current progress counts.
func (h *History) Touch(folder string, imageCount, annotatedCount int) error {
	upsert := `
	INSERT INTO folders (path, image_count, annotated_count, last_opened)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		image_count = excluded.image_count,
		annotated_count = excluded.annotated_count,
		last_opened = excluded.last_opened`
	if _, err := h.db.Exec(upsert, folder, imageCount, annotatedCount, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record folder history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recently opened first.
func (h *History) Recent(limit int) ([]HistoryEntry, error) {
	rows, err := h.db.Query(
		`SELECT path, image_count, annotated_count, last_opened
		 FROM folders ORDER BY last_opened DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query folder history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Folder, &e.ImageCount, &e.AnnotatedCount, &e.LastOpened); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}
