// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the generated lookup tables and the merged
// conversion table in a SQLite database with a full-text index over code
// descriptions. It is the query surface for the lookup and export
// commands; the pipeline itself only ever appends CSVs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/icd-engine/pkg/types"
)

const (
	dbFile            = "icd.db"
	schemaVersion     = 1
	defaultMaxResults = 20
)

// Store manages the lookup SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the lookup database at cfg.IndexDir/icd.db and
// brings the schema up to the current version.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the schema on a fresh database and refuses databases
// written by a newer schema. The version lives in the user_version pragma.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", version, schemaVersion)
	case version != 0:
		return fmt.Errorf("database schema version %d has no upgrade path; delete %s and re-ingest", version, dbFile)
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			edition TEXT NOT NULL,
			variant TEXT NOT NULL,
			code TEXT NOT NULL,
			description TEXT,
			category TEXT,
			subcategory TEXT,
			commoncat TEXT,
			PRIMARY KEY (edition, variant, code)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_code ON records(code)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			code TEXT PRIMARY KEY,
			description TEXT,
			subcategory TEXT,
			commoncat TEXT,
			icd10subcategory TEXT,
			provenance TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			path TEXT PRIMARY KEY,
			mtime TEXT
		)`,
		`CREATE VIRTUAL TABLE records_fts USING fts5(description, content=records, content_rowid=rowid)`,
		`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
			INSERT INTO records_fts(rowid, description) VALUES (new.rowid, new.description);
		END`,
		`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
			INSERT INTO records_fts(records_fts, rowid, description) VALUES('delete', old.rowid, old.description);
		END`,
		`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
			INSERT INTO records_fts(records_fts, rowid, description) VALUES('delete', old.rowid, old.description);
			INSERT INTO records_fts(rowid, description) VALUES (new.rowid, new.description);
		END`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}
	return nil
}
