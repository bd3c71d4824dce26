// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/icd-engine/internal/codebook"
	"github.com/pdiddy/icd-engine/internal/merge"
	"github.com/pdiddy/icd-engine/pkg/types"
)

// IngestSummary holds per-file counts from an ingest run.
type IngestSummary struct {
	Ingested int // files loaded for the first time
	Updated  int // files reloaded after a change
	Skipped  int // files unchanged since the last run
	Failed   int
}

// Total returns the number of recognized files the run looked at.
func (s IngestSummary) Total() int {
	return s.Ingested + s.Updated + s.Skipped + s.Failed
}

// IngestTables loads every recognized CSV under dir into the database: the
// four lookup tables, whose edition and variant come from the filename,
// and the merged conversion table when present. Files whose modification
// time matches the previous run are skipped, so re-ingesting an unchanged
// tables directory is cheap.
func (s *Store) IngestTables(ctx context.Context, dir string, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading tables directory: %w", err)
	}

	var summary IngestSummary
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		edition, variant, isTable := codebook.ParseTableFilename(name)
		isConversion := name == merge.ConversionFilename
		if !isTable && !isConversion {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT mtime FROM ingest_status WHERE path = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		path := filepath.Join(dir, name)
		var count int
		if isConversion {
			count, err = s.ingestConversions(ctx, path, modTime)
		} else {
			count, err = s.ingestRecords(ctx, path, edition, variant, modTime)
		}
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d records)\n", name, count)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "ingesting %s (%d records)\n", name, count)
			summary.Ingested++
		}
	}

	fmt.Fprintf(w, "\ningested: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Ingested, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// ingestRecords replaces one edition/variant slice of the records table
// with the rows of a lookup-table CSV.
func (s *Store) ingestRecords(ctx context.Context, path string, edition types.Edition, variant types.TableVariant, modTime string) (int, error) {
	records, err := codebook.ReadTable(path)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE edition = ? AND variant = ?`, string(edition), string(variant),
	); err != nil {
		return 0, fmt.Errorf("clearing old records: %w", err)
	}

	// Full tables can legitimately repeat a code (the books do); the last
	// row wins here and validate reports the duplicates.
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (edition, variant, code, description, category, subcategory, commoncat)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(edition, variant, code) DO UPDATE SET
			description=excluded.description, category=excluded.category,
			subcategory=excluded.subcategory, commoncat=excluded.commoncat`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			string(edition), string(variant), r.Code, r.Description,
			r.Category, r.Subcategory, r.CommonCategory,
		); err != nil {
			return 0, fmt.Errorf("inserting record %s: %w", r.Code, err)
		}
	}

	if err := s.recordIngest(ctx, tx, filepath.Base(path), modTime); err != nil {
		return 0, err
	}
	return len(records), tx.Commit()
}

// ingestConversions replaces the conversions table with the rows of the
// merged conversion CSV.
func (s *Store) ingestConversions(ctx context.Context, path, modTime string) (int, error) {
	rows, err := merge.ReadConversions(path)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conversions`); err != nil {
		return 0, fmt.Errorf("clearing old conversions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO conversions (code, description, subcategory, commoncat, icd10subcategory, provenance)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range rows {
		if _, err := stmt.ExecContext(ctx,
			c.Code, c.Description, c.Subcategory, c.CommonCategory,
			c.ICD10Subcategory, c.Provenance,
		); err != nil {
			return 0, fmt.Errorf("inserting conversion %s: %w", c.Code, err)
		}
	}

	if err := s.recordIngest(ctx, tx, filepath.Base(path), modTime); err != nil {
		return 0, err
	}
	return len(rows), tx.Commit()
}

func (s *Store) recordIngest(ctx context.Context, tx *sql.Tx, name, modTime string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO ingest_status (path, mtime) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET mtime=excluded.mtime`,
		name, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}
	return nil
}
