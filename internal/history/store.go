// Package history records completed searches in SQLite. Only request
// metadata is stored — results never are, so the store cannot act as a
// result cache.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Record is one completed search.
type Record struct {
	ID             string    `json:"id"`
	Pattern        string    `json:"pattern"`
	BasePath       string    `json:"basePath"`
	UseRegex       bool      `json:"useRegex"`
	CaseSensitive  bool      `json:"caseSensitive"`
	TotalMatches   int       `json:"totalMatches"`
	Truncated      bool      `json:"truncated"`
	DurationMillis int64     `json:"durationMillis"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Store manages the search history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of failing.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add inserts a record. A missing ID or CreatedAt is filled in.
func (s *Store) Add(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (id, pattern, base_path, use_regex, case_sensitive,
			total_matches, truncated, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Pattern, rec.BasePath, rec.UseRegex, rec.CaseSensitive,
		rec.TotalMatches, rec.Truncated, rec.DurationMillis, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert search record: %w", err)
	}
	return nil
}

// List returns records newest first. limit <= 0 returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT id, pattern, base_path, use_regex, case_sensitive,
			total_matches, truncated, duration_ms, created_at
		FROM searches
		ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query search records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Pattern, &rec.BasePath, &rec.UseRegex,
			&rec.CaseSensitive, &rec.TotalMatches, &rec.Truncated,
			&rec.DurationMillis, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search records: %w", err)
	}
	return records, nil
}

// Clear deletes all records and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM searches")
	if err != nil {
		return 0, fmt.Errorf("clear search records: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared records: %w", err)
	}
	return count, nil
}
