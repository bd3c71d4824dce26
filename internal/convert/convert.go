// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns codebook PDFs into the plain-text files the parse
// stage consumes. The heavy lifting is delegated to poppler's pdftotext,
// found on the host PATH or run inside a container image when the host
// tool is missing.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/icd-engine/pkg/types"
)

// Converter extracts the text layer of a single PDF. Backends differ only
// in where pdftotext runs.
type Converter interface {
	// Convert writes the extracted text of pdfPath to textPath. The file
	// at textPath is only meaningful when the returned error is nil.
	Convert(ctx context.Context, pdfPath, textPath string) error

	// Name identifies the backend for progress output.
	Name() string
}

// Status describes the outcome of converting one codebook.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult records the outcome of a batch conversion by codebook name.
type BatchResult struct {
	Converted []string
	Skipped   []string
	Failed    []string
}

// Total returns the number of PDFs the batch looked at.
func (r BatchResult) Total() int {
	return len(r.Converted) + len(r.Skipped) + len(r.Failed)
}

// HasFailures reports whether any conversion failed.
func (r BatchResult) HasFailures() bool {
	return len(r.Failed) > 0
}

// TextPath returns the text file a codebook PDF converts to: the PDF base
// name with a .txt extension, under textDir. Parse derives the edition from
// this name, so icd9.pdf must become icd9.txt.
func TextPath(pdfPath, textDir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(textDir, base+".txt")
}

// ConvertBook converts a single codebook PDF into textDir. An existing text
// file short-circuits the conversion unless force is set. Failures are
// reported to w rather than returned because a batch keeps going past them.
func ConvertBook(ctx context.Context, conv Converter, pdfPath, textDir string, force bool, w io.Writer) Status {
	base := filepath.Base(pdfPath)
	textPath := TextPath(pdfPath, textDir)

	if !force {
		if _, err := os.Stat(textPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return StatusSkipped
		}
	}

	if err := os.MkdirAll(textDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	if err := conv.Convert(ctx, pdfPath, textPath); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	// A zero-byte output means the PDF has no text layer, which the parse
	// stage cannot work with. Scanned books need OCR first.
	info, err := os.Stat(textPath)
	if err != nil || info.Size() == 0 {
		fmt.Fprintf(w, "failed:  %s (no text extracted)\n", base)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return StatusConverted
}

// ConvertBatch converts every PDF under cfg.RawDir into cfg.TextDir and
// prints a summary line to w.
func ConvertBatch(ctx context.Context, conv Converter, cfg types.ConvertConfig, w io.Writer) (BatchResult, error) {
	pdfs, err := listPDFs(cfg.RawDir)
	if err != nil {
		return BatchResult{}, err
	}
	if len(pdfs) == 0 {
		return BatchResult{}, fmt.Errorf("no PDFs found in %s", cfg.RawDir)
	}
	return ConvertPaths(ctx, conv, pdfs, cfg.TextDir, cfg.Force, w), nil
}

// ConvertPaths converts an explicit list of PDFs into textDir, printing
// per-file status to w and returning a summary.
func ConvertPaths(ctx context.Context, conv Converter, pdfPaths []string, textDir string, force bool, w io.Writer) BatchResult {
	fmt.Fprintf(w, "converting %d codebooks with %s\n", len(pdfPaths), conv.Name())

	var result BatchResult
	for _, pdfPath := range pdfPaths {
		base := filepath.Base(pdfPath)
		switch ConvertBook(ctx, conv, pdfPath, textDir, force, w) {
		case StatusConverted:
			result.Converted = append(result.Converted, base)
		case StatusSkipped:
			result.Skipped = append(result.Skipped, base)
		case StatusFailed:
			result.Failed = append(result.Failed, base)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		len(result.Converted), len(result.Skipped), len(result.Failed), result.Total())
	return result
}

// listPDFs returns the PDF files directly under dir, sorted by name.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading raw directory: %w", err)
	}

	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			pdfs = append(pdfs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(pdfs)
	return pdfs, nil
}
