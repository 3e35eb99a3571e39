package notes

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps every user's notes in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and prepares the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "notes.db"
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory %q: %w", dir, err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id, id);
	`)
	if err != nil {
		return fmt.Errorf("migrate notes schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Append(userID, line string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO notes (user_id, content, created_at) VALUES (?, ?, ?)`,
		userID, line, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ReadAll(userID string) ([]string, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT content FROM notes WHERE user_id = ? ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	if len(lines) == 0 {
		return nil, ErrNoNotes
	}
	return lines, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
