// Package store records the documents and translation attempts of a session in
// SQLite. The default DSN is :memory:, so nothing outlives the process unless
// the caller points it at a file explicitly.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

// DefaultDSN keeps history for the duration of the session only.
const DefaultDSN = ":memory:"

type Store struct {
	db *sql.DB
}

func New(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		ext TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		extraction_method TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL,
		status TEXT NOT NULL,
		translation TEXT,
		device TEXT,
		elapsed_ms INTEGER,
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (document_id) REFERENCES documents(id)
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_document ON attempts(document_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// DocumentRecord describes one uploaded document.
type DocumentRecord struct {
	ID               string
	Name             string
	Ext              string
	SizeBytes        int
	ExtractionMethod string
	CreatedAt        time.Time
}

// AttemptRecord describes one translation attempt for a document.
type AttemptRecord struct {
	ID          string
	DocumentID  string
	Status      string
	Translation string
	Device      string
	ElapsedMs   int
	Error       string
	CreatedAt   time.Time
}

func (s *Store) SaveDocument(ctx context.Context, rec DocumentRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, ext, size_bytes, extraction_method, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Ext, rec.SizeBytes, rec.ExtractionMethod, time.Now())
	return err
}

func (s *Store) SaveAttempt(ctx context.Context, rec AttemptRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, document_id, status, translation, device, elapsed_ms, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DocumentID, rec.Status, normalizeText(rec.Translation), rec.Device, rec.ElapsedMs, rec.Error, time.Now())
	return err
}

// HistoryEntry joins a translation attempt with its document.
type HistoryEntry struct {
	DocumentName     string
	ExtractionMethod string
	Status           string
	Device           string
	ElapsedMs        int
	Error            string
	CreatedAt        time.Time
}

// History lists all attempts of the session, oldest first.
func (s *Store) History(ctx context.Context) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.name, d.extraction_method, a.status, COALESCE(a.device, ''), COALESCE(a.elapsed_ms, 0), COALESCE(a.error, ''), a.created_at
		 FROM attempts a JOIN documents d ON d.id = a.document_id
		 ORDER BY a.created_at, a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.DocumentName, &e.ExtractionMethod, &e.Status, &e.Device, &e.ElapsedMs, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes all session history.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attempts`); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText keeps stored Devanagari comparable across composed and
// decomposed forms.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
