// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a record of exported documents in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/omvandlare/pkg/types"
)

const (
	dbFile = "history.db"

	// defaultLimit caps Recent when the caller passes zero.
	defaultLimit = 20

	// timeLayout is fixed width so that text order matches time order.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the export history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates dataDir/history.db and its schema.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			from_format TEXT NOT NULL,
			to_format TEXT NOT NULL,
			bytes INTEGER NOT NULL DEFAULT 0,
			warnings INTEGER NOT NULL DEFAULT 0,
			opened INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rec, filling in ID and CreatedAt when they are empty, and
// returns the stored record.
func (s *Store) Record(ctx context.Context, rec types.ExportRecord) (types.ExportRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (id, path, from_format, to_format, bytes, warnings, opened, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Path, rec.From, rec.To, rec.Bytes, rec.Warnings, rec.Opened,
		rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return rec, fmt.Errorf("inserting export %s: %w", rec.Path, err)
	}
	return rec, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.ExportRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, from_format, to_format, bytes, warnings, opened, created_at
		FROM exports ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer rows.Close()

	var out []types.ExportRecord
	for rows.Next() {
		var (
			rec     types.ExportRecord
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.From, &rec.To, &rec.Bytes, &rec.Warnings, &rec.Opened, &created); err != nil {
			return nil, fmt.Errorf("scanning export row: %w", err)
		}
		rec.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// WriteYAML writes records to w as a YAML list.
func WriteYAML(w io.Writer, records []types.ExportRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes records to w as an indented JSON array.
func WriteJSON(w io.Writer, records []types.ExportRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
